// Command seed loads demo users and delivery entries into a database so the
// dashboard has something to show. It talks straight SQL over the pgx stdlib
// driver and never touches the running service.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

var (
	dsn     = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	users   = flag.Int("users", 3, "Number of demo users to create")
	days    = flag.Int("days", 30, "Days of history to generate per user")
	confirm = flag.Bool("confirm", false, "Required to write demo rows")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}
	if !*confirm {
		fatalf("Refusing to run without --confirm.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		fatalf("begin tx: %v", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op if already committed
	}()

	var entryCount int
	for u := 0; u < *users; u++ {
		userID := uuid.NewString()
		email := fmt.Sprintf("demo%d@example.com", u+1)
		name := fmt.Sprintf("Demo Driver %d", u+1)

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO app_auth.users (user_id, email, name, picture_url, role, created_at)
			 VALUES ($1, $2, $3, '', 'user', now())
			 ON CONFLICT (email) DO NOTHING`,
			userID, email, name,
		); err != nil {
			fatalf("insert user %s: %v", email, err)
		}

		for d := 0; d < *days; d++ {
			// Not every day has a delivery; leave gaps for the trend view.
			if rand.Intn(100) < 25 {
				continue
			}

			date := time.Now().AddDate(0, 0, -d).Format("2006-01-02")
			challan := float64(rand.Intn(9000) + 1000)
			delivered := challan * (0.6 + rand.Float64()*0.4)
			pending := challan - delivered
			required := rand.Intn(8) + 1
			confirmed := rand.Intn(required + 1)

			if _, err := tx.ExecContext(ctx,
				`INSERT INTO app_entries.delivery_entries
				 (id, user_id, date, challan_amount, delivered_amount, pending_amount,
				  vehicle_required, vehicle_confirmed, vehicle_missing, notes, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, '', now(), now())`,
				uuid.NewString(), userID, date, challan, delivered, pending,
				required, confirmed, required-confirmed,
			); err != nil {
				fatalf("insert entry for %s on %s: %v", email, date, err)
			}
			entryCount++
		}
	}

	if err := tx.Commit(); err != nil {
		fatalf("commit: %v", err)
	}

	fmt.Printf("Seeded %d users and %d entries.\n", *users, entryCount)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
