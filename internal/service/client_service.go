package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"clientmap-api/internal/models"
	"clientmap-api/internal/repository"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 100

	linksOnEachSide = 3
)

// ErrNotFound is returned when a requested client does not exist
var ErrNotFound = errors.New("service: not found")

// ClientRepository reads the client directory
type ClientRepository interface {
	CountClients(ctx context.Context) (int, error)
	ListClients(ctx context.Context, limit, offset int) ([]models.Client, error)
	GetClient(ctx context.Context, id int64) (*models.Client, error)
}

// ClientService pages through the client directory
type ClientService struct {
	repo ClientRepository
}

// NewClientService creates a new client service
func NewClientService(repo ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

// List returns the requested page of clients. path is the URL the page links are built on.
func (s *ClientService) List(ctx context.Context, page, perPage int, path string) (*models.ClientPage, error) {
	page, perPage = normalizePage(page, perPage)

	total, err := s.repo.CountClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to count clients: %w", err)
	}

	clients, err := s.repo.ListClients(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list clients: %w", err)
	}

	return &models.ClientPage{
		Pagination: paginate(page, perPage, total, len(clients), path),
		Data:       clients,
	}, nil
}

// Get returns one client with its branches
func (s *ClientService) Get(ctx context.Context, id int64) (*models.Client, error) {
	client, err := s.repo.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("service: failed to get client: %w", err)
	}
	return client, nil
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

func paginate(page, perPage, total, count int, path string) models.Pagination {
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	pageURL := func(n int) string {
		return path + "?page=" + strconv.Itoa(n)
	}
	optionalURL := func(n int) *string {
		if n < 1 || n > lastPage {
			return nil
		}
		u := pageURL(n)
		return &u
	}

	p := models.Pagination{
		CurrentPage:  page,
		FirstPageURL: pageURL(1),
		LastPage:     lastPage,
		LastPageURL:  pageURL(lastPage),
		NextPageURL:  optionalURL(page + 1),
		Path:         path,
		PerPage:      perPage,
		PrevPageURL:  optionalURL(page - 1),
		Total:        total,
	}
	if count > 0 {
		p.From = (page-1)*perPage + 1
		p.To = p.From + count - 1
	}

	p.Links = append(p.Links, models.PaginationLink{URL: p.PrevPageURL, Label: "&laquo; Previous"})
	prev := 0
	for _, n := range pageWindow(page, lastPage) {
		if n > prev+1 {
			p.Links = append(p.Links, models.PaginationLink{Label: "..."})
		}
		p.Links = append(p.Links, models.PaginationLink{URL: optionalURL(n), Label: strconv.Itoa(n), Active: n == page})
		prev = n
	}
	p.Links = append(p.Links, models.PaginationLink{URL: p.NextPageURL, Label: "Next &raquo;"})

	return p
}

// pageWindow lists the page numbers worth linking: the first and last two pages plus
// linksOnEachSide pages around the current one. Short directories list every page.
func pageWindow(page, lastPage int) []int {
	if lastPage < linksOnEachSide*2+8 {
		pages := make([]int, 0, lastPage)
		for n := 1; n <= lastPage; n++ {
			pages = append(pages, n)
		}
		return pages
	}

	var pages []int
	add := func(from, to int) {
		for n := max(from, 1); n <= min(to, lastPage); n++ {
			if len(pages) == 0 || n > pages[len(pages)-1] {
				pages = append(pages, n)
			}
		}
	}
	add(1, 2)
	add(page-linksOnEachSide, page+linksOnEachSide)
	add(lastPage-1, lastPage)
	return pages
}
