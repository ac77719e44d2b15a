// schoolctl is the operator CLI: schema migration, demo seeding and
// staff token minting for the schooldesk API.
package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"schooldesk/config"
	"schooldesk/db"
	"schooldesk/model"
	userrepo "schooldesk/repository/user"
	"schooldesk/util/database"
	jwtutil "schooldesk/util/jwt"
)

func main() {
	root := &cobra.Command{
		Use:           "schoolctl",
		Short:         "Operator tooling for the schooldesk API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(migrateCmd(), seedCmd(), mintTokenCmd(), verifyTokenCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema to the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()
			conn, err := database.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer conn.Close()

			for _, stmt := range splitStatements(db.Schema) {
				if _, err := conn.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("migrate: %w\nstatement: %s", err, stmt)
				}
			}
			fmt.Println("schema applied")
			return nil
		},
	}
}

// splitStatements is enough for our schema: no functions, no semicolons
// inside string literals.
func splitStatements(schema string) []string {
	var out []string
	for _, stmt := range strings.Split(schema, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users, books, issues and counseling requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()
			conn, err := database.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer conn.Close()

			for _, stmt := range seedStatements {
				if _, err := conn.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
			}
			fmt.Println("demo data seeded")
			return nil
		},
	}
}

var seedStatements = []string{
	`INSERT INTO users (name, email, role, student_no, class_name) VALUES
		('Amina Diallo', 'amina.diallo@example.org', 'student', 'S-1001', '10A'),
		('Brian Otieno', 'brian.otieno@example.org', 'student', 'S-1002', '10B'),
		('Chiara Rossi', 'chiara.rossi@example.org', 'student', 'S-1003', '11A')
	ON CONFLICT (email) DO NOTHING`,
	`INSERT INTO users (name, email, role) VALUES
		('Lena Park', 'lena.park@example.org', 'librarian'),
		('Sam Kiptoo', 'sam.kiptoo@example.org', 'counselor'),
		('Rita Mwangi', 'rita.mwangi@example.org', 'admin')
	ON CONFLICT (email) DO NOTHING`,
	`INSERT INTO books (title, author, total_copies, available_copies) VALUES
		('A Wizard of Earthsea', 'Ursula K. Le Guin', 3, 3),
		('Things Fall Apart', 'Chinua Achebe', 2, 2),
		('The Pearl', 'John Steinbeck', 1, 1)
	ON CONFLICT (title, author) DO NOTHING`,
	`INSERT INTO book_issues (book_id, student_id, status)
	SELECT b.id, u.id, 'requested'
	FROM books b, users u
	WHERE b.title = 'Things Fall Apart' AND u.email = 'amina.diallo@example.org'
	AND NOT EXISTS (
		SELECT 1 FROM book_issues i WHERE i.book_id = b.id AND i.student_id = u.id
	)`,
	`INSERT INTO counseling_requests (student_id, counselor_id, reason, message)
	SELECT s.id, c.id, 'Exam stress', 'Would like to talk before finals.'
	FROM users s, users c
	WHERE s.email = 'brian.otieno@example.org' AND c.email = 'sam.kiptoo@example.org'
	AND NOT EXISTS (
		SELECT 1 FROM counseling_requests r WHERE r.student_id = s.id AND r.counselor_id = c.id
	)`,
}

func mintTokenCmd() *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "mint-token",
		Short: "Mint a staff JWT for an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()
			conn, err := database.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer conn.Close()

			u, err := userrepo.New(conn).ByEmail(ctx, email)
			if err != nil {
				return fmt.Errorf("lookup %s: %w", email, err)
			}
			if !slices.Contains(model.StaffRoles, u.Role) {
				return fmt.Errorf("%s is a %s; only staff get dashboard tokens", email, u.Role)
			}
			tok, err := jwtutil.Issue(cfg.JWTSecret, u.ID, string(u.Role), ttl)
			if err != nil {
				return err
			}
			fmt.Printf("user=%d role=%s ttl=%s\n%s\n", u.ID, u.Role, ttl, tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user to mint for")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func verifyTokenCmd() *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "verify-token",
		Short: "Validate a token against the configured secret and print its claims",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			claims, err := jwtutil.ParseAuth(token, cfg.JWTSecret)
			if err != nil {
				return err
			}
			for k, v := range claims {
				fmt.Printf("%s=%v\n", k, v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "token to verify")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
