package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"returns-bridge/core/config"
	"returns-bridge/core/database"
	"returns-bridge/core/logger"
	"returns-bridge/core/reconcile"
	"returns-bridge/feature/lineitems"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	batchFile      string
	dryRunBatch    bool
	yesConfirm     bool
	policyOverride string
)

// reconcileCmd applies a batch file through the same engine the HTTP endpoint uses.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a batch of line items from a JSON file",
	Long: `Reads a batch of change requests, prints the classification of every item,
and applies the batch after confirmation.

The file holds either a JSON array of items or an object {"items": [...]}.

Examples:
  # Show the plan only
  reconcile --file batch.json --dry-run

  # Apply with interactive confirmation
  reconcile --file batch.json

  # Apply non-interactively, committing the items that succeed
  reconcile --file batch.json --policy tolerant --yes`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Batch file (use - for stdin, requires --yes)")
	reconcileCmd.Flags().BoolVar(&dryRunBatch, "dry-run", false, "Print the plan without touching the database")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm (non-interactive)")
	reconcileCmd.Flags().StringVar(&policyOverride, "policy", "", "Override the configured policy (atomic|tolerant)")
	_ = reconcileCmd.MarkFlagRequired("file")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	// The prompt reads stdin too, so a piped batch cannot be confirmed interactively.
	if batchFile == "-" && !dryRunBatch && !yesConfirm {
		return errors.New("--yes is required when the batch is read from stdin")
	}

	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	name := cfg.Reconcile.Policy
	if policyOverride != "" {
		name = policyOverride
	}
	policy, err := reconcile.ParsePolicy(name)
	if err != nil {
		return err
	}

	reqs, err := readBatch(batchFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	// Step 1: Plan (always runs, never touches the database)
	plan, err := reconcile.BuildPlan(reqs)
	if err != nil {
		return err
	}
	printPlan(l, plan)

	if dryRunBatch {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	apply, err := readyToApply(plan, policy)
	if err != nil {
		return err
	}
	if !apply {
		l.Info("No actions to apply.")
		return nil
	}

	// Step 2: Apply (if confirmed)
	if !confirmAction(cmd.InOrStdin(), cmd.OutOrStdout()) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	provider := database.NewProvider(cfg.Database, l)
	defer provider.Close()

	db, err := provider.Get(ctx)
	if err != nil {
		return err
	}

	engine := reconcile.NewEngine(lineitems.NewStore(db), policy, l)
	res, err := engine.Apply(ctx, plan)
	if err != nil {
		return fmt.Errorf("failed to apply batch: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// readyToApply reports whether the plan has anything to run under policy.
// An atomic plan with any failure is refused, even when no action is left.
func readyToApply(plan *reconcile.Plan, policy reconcile.Policy) (bool, error) {
	if policy == reconcile.PolicyAtomic && !plan.Valid() {
		return false, fmt.Errorf("%w: fix the failures above or rerun with --policy tolerant", reconcile.ErrInvalidBatch)
	}
	return len(plan.Actions) > 0, nil
}

// readBatch accepts a bare array or an {"items": [...]} envelope.
func readBatch(path string, stdin io.Reader) ([]reconcile.ChangeRequest, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read batch: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var reqs []reconcile.ChangeRequest
		if err := json.Unmarshal(data, &reqs); err != nil {
			return nil, fmt.Errorf("failed to parse batch: %w", err)
		}
		return reqs, nil
	}

	var envelope lineitems.ReconcileRequest
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse batch: %w", err)
	}
	return envelope.Items, nil
}

// printPlan prints a formatted plan using logger.
func printPlan(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary
	l.Info("Reconciliation plan",
		zap.Int("total_items", s.Total),
		zap.Int("inserts", s.Inserts),
		zap.Int("updates", s.Updates),
		zap.Int("deletes", s.Deletes),
		zap.Int("rejected", s.Rejected),
	)

	for _, action := range plan.Actions {
		l.Info("Planned action",
			zap.Int("index", action.Index),
			zap.String("action", string(action.Kind)),
			zap.Any("key", action.Key),
		)
	}
	for _, f := range plan.Failures {
		l.Warn("Item not applicable",
			zap.Int("index", f.Index),
			zap.String("action", string(f.Kind)),
			zap.String("reason", f.Reason),
		)
	}
}

// confirmAction prompts the user for confirmation or uses --yes flag.
func confirmAction(in io.Reader, out io.Writer) bool {
	if yesConfirm {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "\n⚠️  Type 'yes' to apply the batch: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
