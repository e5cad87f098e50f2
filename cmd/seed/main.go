package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"bookshelf/internal/config"
	"bookshelf/internal/entity"
	"bookshelf/internal/lending"
	"bookshelf/internal/platform/postgres"
	"bookshelf/internal/repository"
)

// Tables in the order fixtures depend on each other.
var tables = []string{"issuances", "readers", "books", "authors", "publishers"}

type counts struct {
	Authors    int
	Publishers int
	Books      int
	Readers    int
	Issuances  int
}

var defaultCounts = counts{Authors: 10, Publishers: 5, Books: 20, Readers: 15, Issuances: 30}

func main() {
	var (
		clearAll  = flag.Bool("clear", false, "Truncate every table and exit")
		randSeed  = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
		issuances = flag.Int("issuances", defaultCounts.Issuances, "Number of issuances to create")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.Open(ctx, postgres.Config{DSN: cfg.DatabaseDSN, MaxConns: 4})
	if err != nil {
		logger.Error("connect", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *clearAll {
		if err := postgres.Truncate(ctx, pool, tables...); err != nil {
			logger.Error("clear tables", "error", err)
			os.Exit(1)
		}
		logger.Info("tables cleared", "tables", tables)
		return
	}

	repos := lending.NewRepositories(pool, repository.WithTimeout(cfg.DBQueryTimeout))
	s := &seeder{
		repos:   repos,
		lending: lending.NewService(pool, repos),
		rnd:     rand.New(rand.NewPCG(*randSeed, *randSeed)),
		logger:  logger,
		now:     time.Now(),
	}

	n := defaultCounts
	n.Issuances = *issuances
	if err := s.run(ctx, n); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

var (
	firstNames = []string{"Anna", "Boris", "Vera", "Grigory", "Darya", "Yegor", "Zoya", "Ivan", "Kira", "Lev", "Maria", "Nikita", "Olga", "Pavel", "Raisa"}
	lastNames  = []string{"Ivanov", "Petrova", "Sidorov", "Smirnova", "Kuznetsov", "Popova", "Volkov", "Sokolova", "Lebedev", "Kozlova"}
	cities     = []string{"Moscow", "Kazan", "Tver", "Omsk", "Samara", "Perm", "Tula"}
	streets    = []string{"Lenina", "Mira", "Sadovaya", "Pushkina", "Gagarina", "Lesnaya"}
	words      = []string{"Silent", "River", "Winter", "Garden", "Letters", "Stone", "Night", "Northern", "Road", "Light", "Island", "Shadow", "Harbor", "Glass", "Orchard"}
	companies  = []string{"Press", "Books", "Publishing", "House", "Media"}
)

type seeder struct {
	repos   lending.Repositories
	lending *lending.Service
	rnd     *rand.Rand
	logger  *slog.Logger
	now     time.Time
}

func (s *seeder) run(ctx context.Context, n counts) error {
	authors := make([]entity.Author, 0, n.Authors)
	for i := range n.Authors {
		a, err := s.repos.Authors.Create(ctx, repository.Fields{
			"name": fmt.Sprintf("%s %s %d", s.pick(firstNames), s.pick(lastNames), i+1),
		})
		if err != nil {
			return fmt.Errorf("create author: %w", err)
		}
		authors = append(authors, a)
	}
	s.logger.Info("authors created", "count", len(authors))

	publishers := make([]entity.Publisher, 0, n.Publishers)
	for i := range n.Publishers {
		p, err := s.repos.Publishers.Create(ctx, repository.Fields{
			"name": fmt.Sprintf("%s %s %d", s.pick(words), s.pick(companies), i+1),
			"city": s.pick(cities),
		})
		if err != nil {
			return fmt.Errorf("create publisher: %w", err)
		}
		publishers = append(publishers, p)
	}
	s.logger.Info("publishers created", "count", len(publishers))

	readers := make([]entity.Reader, 0, n.Readers)
	for i := range n.Readers {
		r, err := s.repos.Readers.Create(ctx, repository.Fields{
			"full_name": fmt.Sprintf("%s %s", s.pick(firstNames), s.pick(lastNames)),
			"phone":     fmt.Sprintf("+7(9%02d)%03d-%02d-%02d", i%100, s.rnd.IntN(1000), s.rnd.IntN(100), s.rnd.IntN(100)),
			"address":   fmt.Sprintf("%s, %s st. %d", s.pick(cities), s.pick(streets), 1+s.rnd.IntN(120)),
		})
		if err != nil {
			return fmt.Errorf("create reader: %w", err)
		}
		readers = append(readers, r)
	}
	s.logger.Info("readers created", "count", len(readers))

	books := make([]entity.Book, 0, n.Books)
	for i := range n.Books {
		b, err := s.lending.CreateBook(ctx, repository.Fields{
			"title":           fmt.Sprintf("The %s %s, vol. %d", s.pick(words), s.pick(words), i+1),
			"author_code":     authors[s.rnd.IntN(len(authors))].Code,
			"publisher_code":  publishers[s.rnd.IntN(len(publishers))].Code,
			"publishing_year": 1800 + s.rnd.IntN(226),
			"price":           math.Round((10+s.rnd.Float64()*9990)*100) / 100,
			"amount":          5 + s.rnd.IntN(96),
		})
		if err != nil {
			return fmt.Errorf("create book: %w", err)
		}
		books = append(books, b)
	}
	s.logger.Info("books created", "count", len(books))

	created := 0
	for range n.Issuances {
		issued := entity.Day(s.now).AddDate(0, 0, -s.rnd.IntN(40))
		_, err := s.lending.CreateIssuance(ctx, repository.Fields{
			"book_code":   books[s.rnd.IntN(len(books))].Code,
			"reader_code": readers[s.rnd.IntN(len(readers))].Code,
			"issued_at":   issued,
			"expires_at":  issued.Add(entity.LoanPeriod),
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, repository.ErrBusinessRule):
			// The reader is at the limit or the book ran out; skip it.
			s.logger.Debug("issuance skipped", "error", err)
		default:
			return fmt.Errorf("create issuance: %w", err)
		}
	}
	s.logger.Info("issuances created", "count", created, "requested", n.Issuances)
	return nil
}

func (s *seeder) pick(from []string) string {
	return from[s.rnd.IntN(len(from))]
}
