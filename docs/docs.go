// Package docs registers the OpenAPI document served under /swagger.
// Keep it in sync with the @Router annotations in internal/handler.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/address-suggestions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["geocoding"],
                "summary": "Suggest addresses for a partial query",
                "parameters": [
                    {"type": "string", "description": "partial address", "name": "q", "in": "query", "required": true},
                    {"type": "integer", "description": "maximum number of suggestions", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Suggestion"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/clients": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "List clients page by page",
                "parameters": [
                    {"type": "integer", "description": "page number, from 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "clients per page", "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ClientPage"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/clients/map": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Map of one page of clients and their branches",
                "parameters": [
                    {"type": "integer", "description": "page number, from 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "clients per page", "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/mapview.Snapshot"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/clients/{id}/map": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Map of one client and its branches",
                "parameters": [
                    {"type": "integer", "description": "client id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/mapview.Snapshot"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/geocode": {
            "get": {
                "produces": ["application/json"],
                "tags": ["geocoding"],
                "summary": "Resolve an address to coordinates",
                "parameters": [
                    {"type": "string", "description": "free-text address", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Coordinates"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/reverse-geocode": {
            "get": {
                "produces": ["application/json"],
                "tags": ["geocoding"],
                "summary": "Find the address nearest to a coordinate pair",
                "parameters": [
                    {"type": "number", "description": "latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "longitude", "name": "lon", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Place"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "mapview.Snapshot": {
            "type": "object",
            "properties": {
                "center": {"$ref": "#/definitions/models.Coordinates"},
                "zoom": {"type": "integer"},
                "zoom_control": {"type": "boolean"},
                "tile_layer": {"$ref": "#/definitions/mapview.TileLayer"},
                "markers": {"type": "array", "items": {"$ref": "#/definitions/marker.Marker"}}
            }
        },
        "mapview.TileLayer": {
            "type": "object",
            "properties": {
                "url_template": {"type": "string"},
                "attribution": {"type": "string"}
            }
        },
        "marker.Marker": {
            "type": "object",
            "properties": {
                "position": {"$ref": "#/definitions/models.Coordinates"},
                "title": {"type": "string"},
                "address": {"type": "string"},
                "kind": {"type": "string"},
                "cell": {"type": "string"},
                "draggable": {"type": "boolean"},
                "keyboard": {"type": "boolean"},
                "icon": {"type": "object"},
                "popup": {"type": "object"},
                "tooltip": {"type": "object"},
                "events": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.Branch": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "client_id": {"type": "integer"},
                "address": {"type": "string"},
                "contact_firstname": {"type": "string"},
                "contact_lastname": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "models.Client": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "central_address": {"type": "string"},
                "branches": {"type": "array", "items": {"$ref": "#/definitions/models.Branch"}}
            }
        },
        "models.ClientPage": {
            "type": "object",
            "properties": {
                "current_page": {"type": "integer"},
                "first_page_url": {"type": "string"},
                "from": {"type": "integer"},
                "last_page": {"type": "integer"},
                "last_page_url": {"type": "string"},
                "next_page_url": {"type": "string"},
                "path": {"type": "string"},
                "per_page": {"type": "integer"},
                "prev_page_url": {"type": "string"},
                "to": {"type": "integer"},
                "total": {"type": "integer"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.Client"}}
            }
        },
        "models.Coordinates": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "models.Place": {
            "type": "object",
            "properties": {
                "display_name": {"type": "string"},
                "road": {"type": "string"},
                "house_number": {"type": "string"},
                "suburb": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "postcode": {"type": "string"},
                "country": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "models.Suggestion": {
            "type": "object",
            "properties": {
                "display_name": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Client Map API",
	Description:      "Client directory with address geocoding and map markers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
