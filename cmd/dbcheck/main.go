package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"stockroom/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
)

// undefinedTable is the postgres error code for a missing relation.
const undefinedTable = "42P01"

// dbcheck connects with the DB_* settings and reports what the record
// store holds per collection.
func main() {
	_ = godotenv.Load()

	cfg := config.LoadDatabase()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, cfg.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var dbName string
	if err := conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	rows, err := conn.Query(ctx, `SELECT collection, count(*) FROM records GROUP BY collection ORDER BY collection`)
	if err != nil {
		exitQuery(err)
	}
	defer rows.Close()

	found := 0
	for rows.Next() {
		var (
			collection string
			count      int64
		)
		if err := rows.Scan(&collection, &count); err != nil {
			fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  %-12s %d\n", collection, count)
		found++
	}
	if err := rows.Err(); err != nil {
		exitQuery(err)
	}

	if found == 0 {
		fmt.Println("The record store is empty.")
	}
}

// exitQuery reports a failed records query. A missing table only means the
// API has not started against this database yet.
func exitQuery(err error) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		fmt.Println("The records table does not exist yet; start the API once to create it.")
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
	os.Exit(1)
}
