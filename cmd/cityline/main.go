package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cityline/internal/config"
	"cityline/internal/db"
	"cityline/internal/llm"
	"cityline/internal/migrate"
	"cityline/internal/orchestrator"
	"cityline/internal/repo"
	"cityline/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "cityline",
	Short: "Cityline CLI",
	Long: `Cityline turns a free-form city brief into a phased construction run.
An architect model drafts a five-phase plan, simulated database/backend/frontend
roles narrate their contributions, buildings are materialized one by one, and a
QA pass closes the run. Everything lands in a local SQLite workspace; watch
progress with 'cityline buildings' and 'cityline log tail'.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workspace := viper.GetString("workspace")
		if _, err := db.EnsureWorkspace(workspace); err != nil {
			return err
		}
		return nil
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("CITYLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().Int64("user", 0, "acting user id (0 = anonymous)")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))
}

func registerCommands() {
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(buildingsCmd())
	rootCmd.AddCommand(tasksCmd())
	rootCmd.AddCommand(logCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(serveCmd())
}

func projectCmd() *cobra.Command {
	prj := &cobra.Command{Use: "project", Short: "Manage city projects"}
	prj.AddCommand(projectCreateCmd())
	prj.AddCommand(projectListCmd())
	prj.AddCommand(projectShowCmd())
	prj.AddCommand(projectBuildCmd())
	return prj
}

func projectCreateCmd() *cobra.Command {
	var name, prompt string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(prompt) == "" {
				return fmt.Errorf("--prompt required")
			}
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name required")
			}
			return withRepo(cmd.Context(), func(ctx context.Context, r repo.Repo) error {
				id, err := r.InsertProject(ctx, viper.GetInt64("user"), name, prompt)
				if err != nil {
					return err
				}
				p, err := r.GetProject(ctx, id)
				if err != nil {
					return err
				}
				return printJSONOrTable(p)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&prompt, "prompt", "", "city brief for the architect")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func projectListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects for the acting user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(cmd.Context(), func(ctx context.Context, r repo.Repo) error {
				items, err := r.ListProjectsByUser(ctx, viper.GetInt64("user"))
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Status", "Step", "Created"})
				for _, p := range items {
					tw.AppendRow(table.Row{p.ID, p.Name, p.Status, p.CurrentStep, p.CreatedAt})
				}
				tw.Render()
				return nil
			})
		},
	}
	return cmd
}

func projectShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withRepo(cmd.Context(), func(ctx context.Context, r repo.Repo) error {
				p, err := r.GetProject(ctx, id)
				if err != nil {
					return err
				}
				return printJSONOrTable(p)
			})
		},
	}
	return cmd
}

func projectBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <id>",
		Short: "Run the construction sequence in the foreground",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withOrchestrator(cmd.Context(), func(ctx context.Context, o *orchestrator.Orchestrator, r repo.Repo) error {
				p, err := r.GetProject(ctx, id)
				if err != nil {
					return err
				}
				if p.Status != "pending" {
					return fmt.Errorf("build already started (status %s)", p.Status)
				}
				if err := o.Run(ctx, id); err != nil {
					return err
				}
				done, err := r.GetProject(ctx, id)
				if err != nil {
					return err
				}
				return printJSONOrTable(done)
			})
		},
	}
	return cmd
}

func buildingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buildings <project-id>",
		Short: "List buildings in creation order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withRepo(cmd.Context(), func(ctx context.Context, r repo.Repo) error {
				items, err := r.ListBuildings(ctx, id)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Type", "X", "Z", "H", "Color"})
				for _, b := range items {
					tw.AppendRow(table.Row{b.ID, b.Name, b.Type, b.PositionX, b.PositionZ, b.Height, b.Color})
				}
				tw.Render()
				return nil
			})
		},
	}
	return cmd
}

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks <project-id>",
		Short: "List role tasks, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withRepo(cmd.Context(), func(ctx context.Context, r repo.Repo) error {
				items, err := r.ListTasks(ctx, id)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Role", "Model", "Status", "Description"})
				for _, t := range items {
					tw.AppendRow(table.Row{t.ID, t.Role, t.Model, t.Status, t.Description})
				}
				tw.Render()
				return nil
			})
		},
	}
	return cmd
}

func logCmd() *cobra.Command {
	logRoot := &cobra.Command{Use: "log", Short: "Inspect the communication log"}
	logRoot.AddCommand(logTailCmd())
	return logRoot
}

func logTailCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "tail <project-id>",
		Short: "Show the newest log entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withRepo(cmd.Context(), func(ctx context.Context, r repo.Repo) error {
				entries, err := r.ListLogs(ctx, id)
				if err != nil {
					return err
				}
				if n > 0 && len(entries) > n {
					entries = entries[:n]
				}
				if viper.GetBool("json") {
					return printJSON(entries)
				}
				for _, e := range entries {
					fmt.Printf("%s  %s -> %s: %s\n", e.Timestamp, e.From, e.To, e.Message)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&n, "n", 20, "number of entries")
	return cmd
}

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <project-id>",
		Short: "Summarize the project debate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withOrchestrator(cmd.Context(), func(ctx context.Context, o *orchestrator.Orchestrator, r repo.Repo) error {
				if _, err := r.GetProject(ctx, id); err != nil {
					return err
				}
				s := o.Summarize(ctx, id)
				if viper.GetBool("json") {
					return printJSON(s)
				}
				fmt.Println("Conclusion:", s.Conclusion)
				for _, a := range s.KeyArguments {
					fmt.Printf("  %s: %s\n", a.Role, a.Argument)
				}
				if len(s.Agreements) > 0 {
					fmt.Println("Agreements:")
					for _, a := range s.Agreements {
						fmt.Println("  -", a)
					}
				}
				if len(s.Disagreements) > 0 {
					fmt.Println("Disagreements:")
					for _, d := range s.Disagreements {
						fmt.Println("  -", d)
					}
				}
				return nil
			})
		},
	}
	return cmd
}

func serveCmd() *cobra.Command {
	var addr, basePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := viper.GetString("workspace")
			conn, err := db.Open(db.Config{Workspace: workspace})
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := migrate.Migrate(cmd.Context(), conn); err != nil {
				return err
			}
			cfg, err := config.Load(workspace)
			if err != nil {
				return err
			}
			r := repo.Repo{DB: conn}
			client := llm.NewHTTPClient(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.APIKeyEnv, cfg.LLMTimeout())
			o := orchestrator.New(r, client, cfg)
			secret := cfg.Auth.JWTSecret
			if secret == "" {
				secret = os.Getenv("CITYLINE_JWT_SECRET")
			}
			handler, err := server.New(server.Config{
				Repo:         r,
				Orchestrator: o,
				BasePath:     basePath,
				Auth:         server.AuthConfig{JWTSecret: secret},
			})
			if err != nil {
				return err
			}
			srv := &http.Server{Addr: addr, Handler: handler}
			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()
			fmt.Printf("Serving Cityline API on http://%s%s (OpenAPI at /openapi.json, Swagger UI at /docs)\n", addr, basePath)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&basePath, "base-path", "/v1", "API base path")
	return cmd
}

// --- helpers ---

func withRepo(ctx context.Context, fn func(context.Context, repo.Repo) error) error {
	workspace := viper.GetString("workspace")
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := migrate.Migrate(ctx, conn); err != nil {
		return err
	}
	return fn(ctx, repo.Repo{DB: conn})
}

func withOrchestrator(ctx context.Context, fn func(context.Context, *orchestrator.Orchestrator, repo.Repo) error) error {
	workspace := viper.GetString("workspace")
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := migrate.Migrate(ctx, conn); err != nil {
		return err
	}
	cfg, err := config.Load(workspace)
	if err != nil {
		return err
	}
	r := repo.Repo{DB: conn}
	client := llm.NewHTTPClient(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.APIKeyEnv, cfg.LLMTimeout())
	return fn(ctx, orchestrator.New(r, client, cfg), r)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project id %q", arg)
	}
	return id, nil
}

func printJSONOrTable(v any) error {
	if viper.GetBool("json") {
		return printJSON(v)
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
