package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"clientmap-api/internal/config"
	"clientmap-api/internal/models"
	"clientmap-api/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

const csvColumns = 8

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	schema := flag.String("schema", "public", "Database schema to import into")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	clients, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	branches := 0
	for _, c := range clients {
		branches += len(c.Branches)
	}
	fmt.Printf("Parsed %d clients with %d branches\n", len(clients), branches)

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	// Ensure tables exist
	if err := createTablesIfNotExist(ctx, conn, *schema); err != nil {
		fmt.Printf("Error creating tables: %v\n", err)
		os.Exit(1)
	}

	before, err := countRows(ctx, conn)
	if err != nil {
		fmt.Printf("Error counting existing rows: %v\n", err)
		os.Exit(1)
	}

	// Insert records
	if err := insertClients(ctx, conn, clients); err != nil {
		fmt.Printf("Error inserting records: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	if err := verifyImport(ctx, conn, before, len(clients), branches); err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d clients and %d branches\n", len(clients), branches)
}

// parseCSV reads one row per branch; rows sharing a client name belong to the same client
// and an empty branch address marks a client without branches.
func parseCSV(filePath string) ([]models.Client, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return readClients(file)
}

func readClients(r io.Reader) ([]models.Client, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var clients []models.Client
	byName := make(map[string]int)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < csvColumns {
			return nil, fmt.Errorf("line %d: invalid record length: %d, expected %d columns", line, len(record), csvColumns)
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}

		name := record[0]
		if name == "" || record[3] == "" {
			return nil, fmt.Errorf("line %d: client name and central address are required", line)
		}

		i, ok := byName[name]
		if !ok {
			clients = append(clients, models.Client{
				Name:           name,
				Email:          record[1],
				Phone:          record[2],
				CentralAddress: record[3],
			})
			i = len(clients) - 1
			byName[name] = i
		}

		if record[4] == "" {
			continue
		}
		clients[i].Branches = append(clients[i].Branches, models.Branch{
			Address:          record[4],
			ContactFirstname: record[5],
			ContactLastname:  record[6],
			Phone:            record[7],
		})
	}

	return clients, nil
}

func createTablesIfNotExist(ctx context.Context, conn *pgx.Conn, schema string) error {
	quoted := pq.QuoteIdentifier(schema)
	query := fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s; SET search_path TO %s;", quoted, quoted)
	if _, err := conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to prepare schema %s: %w", schema, err)
	}

	_, err := conn.Exec(ctx, repository.Schema)
	return err
}

func insertClients(ctx context.Context, conn *pgx.Conn, clients []models.Client) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var branchRows [][]interface{}
	for _, c := range clients {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO clients (name, email, phone, central_address) VALUES ($1, $2, $3, $4) RETURNING id`,
			c.Name, c.Email, c.Phone, c.CentralAddress,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert client %q: %w", c.Name, err)
		}

		for _, b := range c.Branches {
			branchRows = append(branchRows, []interface{}{id, b.Address, b.ContactFirstname, b.ContactLastname, b.Phone})
		}
	}

	// Use CopyFrom for bulk insert
	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"branches"},
		[]string{"client_id", "address", "contact_firstname", "contact_lastname", "phone"},
		pgx.CopyFromRows(branchRows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy branches: %w", err)
	}

	return tx.Commit(ctx)
}

type rowCounts struct {
	clients  int
	branches int
}

func countRows(ctx context.Context, conn *pgx.Conn) (rowCounts, error) {
	var counts rowCounts
	err := conn.QueryRow(ctx, "SELECT (SELECT COUNT(*) FROM clients), (SELECT COUNT(*) FROM branches)").
		Scan(&counts.clients, &counts.branches)
	return counts, err
}

func verifyImport(ctx context.Context, conn *pgx.Conn, before rowCounts, clients, branches int) error {
	after, err := countRows(ctx, conn)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if got := after.clients - before.clients; got != clients {
		return fmt.Errorf("client count mismatch: expected %d, got %d", clients, got)
	}
	if got := after.branches - before.branches; got != branches {
		return fmt.Errorf("branch count mismatch: expected %d, got %d", branches, got)
	}

	// Check a sample row
	var name, address string
	err = conn.QueryRow(ctx, "SELECT name, central_address FROM clients ORDER BY id DESC LIMIT 1").Scan(&name, &address)
	if err != nil {
		return fmt.Errorf("failed to check sample client: %w", err)
	}

	fmt.Printf("Sample client: %s (%s)\n", name, address)
	return nil
}
