package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/porticus-lab/go-attention/n8n"
)

const workflowUsage = `usage: gaze workflow <subcommand> [flags]

Subcommands:
  list       list workflows on the n8n instance
  export     export one workflow to a JSON file
  validate   check a workflow for structural problems
  backup     export every active workflow into a directory

Connection flags (all subcommands):
  -url string   n8n base URL (default $GAZE_N8N_URL)
  -key string   n8n API key (default $GAZE_N8N_KEY)
`

// runWorkflow implements the "workflow" command group against an n8n
// instance.
func runWorkflow(log zerolog.Logger, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, workflowUsage)
		return fmt.Errorf("no subcommand specified")
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return runWorkflowList(log, rest)
	case "export":
		return runWorkflowExport(log, rest)
	case "validate":
		return runWorkflowValidate(log, rest)
	case "backup":
		return runWorkflowBackup(log, rest)
	case "help", "-h", "--help":
		fmt.Print(workflowUsage)
		return nil
	default:
		fmt.Fprint(os.Stderr, workflowUsage)
		return fmt.Errorf("unknown workflow subcommand %q", sub)
	}
}

// connFlags registers the shared connection flags and returns a
// constructor that builds the client after parsing.
func connFlags(fs *flag.FlagSet) func() (*n8n.Client, error) {
	baseURL := fs.String("url", envOr("GAZE_N8N_URL", ""), "n8n base URL")
	apiKey := fs.String("key", envOr("GAZE_N8N_KEY", ""), "n8n API key")
	return func() (*n8n.Client, error) {
		if *baseURL == "" {
			return nil, fmt.Errorf("no n8n URL: pass -url or set GAZE_N8N_URL")
		}
		return n8n.NewClient(*baseURL, *apiKey), nil
	}
}

func runWorkflowList(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("workflow list", flag.ContinueOnError)
	client := connFlags(fs)
	activeOnly := fs.Bool("active", false, "only active workflows")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := client()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	workflows, err := c.ListWorkflows(ctx, *activeOnly)
	if err != nil {
		return err
	}
	for _, w := range workflows {
		state := "inactive"
		if w.Active {
			state = "active"
		}
		fmt.Printf("%-24s  %-8s  %s\n", w.ID, state, w.Name)
	}
	log.Info().Int("count", len(workflows)).Msg("workflows listed")
	return nil
}

func runWorkflowExport(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("workflow export", flag.ContinueOnError)
	client := connFlags(fs)
	out := fs.String("o", "", "output path (default <name>_<timestamp>.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id := fs.Arg(0)
	if id == "" {
		return fmt.Errorf("no workflow ID specified")
	}
	c, err := client()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	path, err := c.ExportWorkflow(ctx, id, *out)
	if err != nil {
		return err
	}
	log.Info().Str("id", id).Str("path", path).Msg("workflow exported")
	return nil
}

func runWorkflowValidate(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("workflow validate", flag.ContinueOnError)
	client := connFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id := fs.Arg(0)
	if id == "" {
		return fmt.Errorf("no workflow ID specified")
	}
	c, err := client()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	w, err := c.Workflow(ctx, id)
	if err != nil {
		return err
	}

	v := w.Validate()
	broken := w.BrokenConnections()

	fmt.Printf("workflow:    %s (%s)\n", w.Name, w.ID)
	fmt.Printf("nodes:       %d\n", v.NodeCount)
	fmt.Printf("connections: %d\n", v.ConnectionCount)
	if v.Valid && len(broken) == 0 {
		fmt.Println("status:      ok")
		return nil
	}
	fmt.Println("status:      problems found")
	for _, issue := range v.Issues {
		fmt.Printf("  - %s\n", issue)
	}
	for _, issue := range broken {
		fmt.Printf("  - %s\n", issue)
	}
	return fmt.Errorf("workflow %s has %d problem(s)", id, len(v.Issues)+len(broken))
}

func runWorkflowBackup(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("workflow backup", flag.ContinueOnError)
	client := connFlags(fs)
	dir := fs.String("dir", "n8n_backup", "backup directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := client()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	paths, err := c.BackupAll(ctx, *dir)
	for _, p := range paths {
		fmt.Println(p)
	}
	if err != nil {
		log.Error().Err(err).Int("exported", len(paths)).Msg("backup finished with errors")
		return err
	}
	log.Info().
		Int("exported", len(paths)).
		Str("dir", *dir).
		Dur("took", time.Since(start)).
		Msg("backup complete")
	return nil
}
