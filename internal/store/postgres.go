package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dharmasatrya/aerohub/internal/models"
)

type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects, creates the airports table when missing and seeds an empty table.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	p := &Postgres{pool: pool}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS airports (
            key TEXT PRIMARY KEY,
            icao TEXT NOT NULL,
            iata TEXT NOT NULL DEFAULT '',
            name TEXT NOT NULL,
            city TEXT NOT NULL DEFAULT '',
            state TEXT NOT NULL DEFAULT '',
            country TEXT NOT NULL,
            elevation INTEGER NOT NULL DEFAULT 0,
            lat DOUBLE PRECISION NOT NULL DEFAULT 0,
            lon DOUBLE PRECISION NOT NULL DEFAULT 0,
            timezone TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS airports_state_idx ON airports (lower(state))`,
	}
	for _, stmt := range stmts {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	var count int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM airports`).Scan(&count); err != nil {
		return fmt.Errorf("count airports: %w", err)
	}
	if count > 0 {
		return nil
	}
	return p.seed(ctx)
}

func (p *Postgres) seed(ctx context.Context) error {
	seed, err := SeedAirports()
	if err != nil {
		return fmt.Errorf("decode seed airports: %w", err)
	}

	batch := &pgx.Batch{}
	for _, a := range seed {
		batch.Queue(insertAirport+` ON CONFLICT (key) DO NOTHING`,
			a.Key, a.Key, a.IATA, a.Name, a.City, a.State, a.Country, a.Elevation, a.Lat, a.Lon, a.Timezone)
	}

	br := p.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range seed {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("seed airports: %w", err)
		}
	}
	return nil
}

const insertAirport = `INSERT INTO airports (key, icao, iata, name, city, state, country, elevation, lat, lon, timezone)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const airportColumns = `key, icao, iata, name, city, state, country, elevation, lat, lon, timezone`

// sortColumns whitelists ORDER BY targets; field names never reach SQL unchecked.
var sortColumns = map[models.SortField]string{
	models.SortKey:       "key",
	models.SortICAO:      "icao",
	models.SortIATA:      "iata",
	models.SortName:      "name",
	models.SortCity:      "city",
	models.SortState:     "state",
	models.SortCountry:   "country",
	models.SortElevation: "elevation",
	models.SortLat:       "lat",
	models.SortLon:       "lon",
	models.SortTimezone:  "timezone",
}

// buildListQuery returns the WHERE clause with its args and the ORDER BY clause for q.
func buildListQuery(q models.ListQuery) (where string, args []any, orderBy string) {
	var conds []string
	if s := strings.TrimSpace(q.Search); s != "" {
		args = append(args, "%"+strings.ToLower(s)+"%")
		n := "$" + strconv.Itoa(len(args))
		conds = append(conds, "(lower(key) LIKE "+n+" OR lower(iata) LIKE "+n+" OR lower(name) LIKE "+n+
			" OR lower(city) LIKE "+n+" OR lower(state) LIKE "+n+" OR lower(country) LIKE "+n+")")
	}
	if s := strings.TrimSpace(q.State); s != "" {
		args = append(args, strings.ToLower(s))
		conds = append(conds, "lower(state) = $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	orderBy = " ORDER BY key ASC"
	if col, ok := sortColumns[q.SortField]; ok {
		dir := "ASC"
		if q.SortDirection == models.SortDesc {
			dir = "DESC"
		}
		orderBy = " ORDER BY " + col + " " + dir + ", key ASC"
	}
	return where, args, orderBy
}

func (p *Postgres) List(ctx context.Context, q models.ListQuery) (models.Page, error) {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}
	where, args, orderBy := buildListQuery(q)

	var total int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM airports`+where, args...).Scan(&total); err != nil {
		return models.Page{}, fmt.Errorf("count airports: %w", err)
	}

	limitArgs := append(args, pageSize, q.PageNumber*pageSize)
	sql := `SELECT ` + airportColumns + ` FROM airports` + where + orderBy +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)

	rows, err := p.pool.Query(ctx, sql, limitArgs...)
	if err != nil {
		return models.Page{}, fmt.Errorf("list airports: %w", err)
	}
	defer rows.Close()

	content := []models.Airport{}
	for rows.Next() {
		var a models.Airport
		if err := rows.Scan(&a.Key, &a.ICAO, &a.IATA, &a.Name, &a.City, &a.State, &a.Country,
			&a.Elevation, &a.Lat, &a.Lon, &a.Timezone); err != nil {
			return models.Page{}, fmt.Errorf("scan airport: %w", err)
		}
		content = append(content, a)
	}
	if err := rows.Err(); err != nil {
		return models.Page{}, fmt.Errorf("list airports: %w", err)
	}

	return models.Page{
		Content:       content,
		TotalPages:    models.TotalPagesFor(total, pageSize),
		TotalElements: total,
	}, nil
}

func (p *Postgres) Create(ctx context.Context, in models.AirportInput) (models.Airport, error) {
	row := p.pool.QueryRow(ctx,
		insertAirport+` ON CONFLICT (key) DO NOTHING RETURNING `+airportColumns,
		in.Key, in.Key, in.IATA, in.Name, in.City, in.State, in.Country, in.Elevation, in.Lat, in.Lon, in.Timezone,
	)

	var a models.Airport
	err := row.Scan(&a.Key, &a.ICAO, &a.IATA, &a.Name, &a.City, &a.State, &a.Country,
		&a.Elevation, &a.Lat, &a.Lon, &a.Timezone)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Airport{}, ErrDuplicateKey
	}
	if err != nil {
		return models.Airport{}, fmt.Errorf("insert airport: %w", err)
	}
	return a, nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
