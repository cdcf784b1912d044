package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/listings-cli/pkg/outscraper"
)

var (
	pullOutDir     string
	pullResumeFrom string
)

var pullCmd = &cobra.Command{
	Use:   "pull [state ...]",
	Short: "Pull provider listings from Outscraper",
	Long:  "Submits search queries per state (plus per-metro queries for large states), polls for results, dedupes by place id, and writes one raw JSON file per state.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Pull.APIKey == "" {
			return eris.New("pull: api key not configured (set LISTINGS_PULL_API_KEY)")
		}

		outDir := pullOutDir
		if outDir == "" {
			outDir = cfg.Clean.RawDir
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return eris.Wrapf(err, "pull: mkdir %s", outDir)
		}

		states, err := selectStates(args, pullResumeFrom)
		if err != nil {
			return err
		}

		client := outscraper.NewClient(cfg.Pull.APIKey,
			outscraper.WithBaseURL(cfg.Pull.BaseURL),
			outscraper.WithResultsURL(cfg.Pull.ResultsURL),
			outscraper.WithPollInterval(time.Duration(cfg.Pull.PollSecs)*time.Second),
			outscraper.WithMaxWait(time.Duration(cfg.Pull.MaxWaitSecs)*time.Second),
		)

		p := &puller{
			client:  client,
			queries: cfg.Pull.Queries,
			limit:   cfg.Pull.Limit,
			outDir:  outDir,
		}
		return p.run(cmd.Context(), states)
	},
}

func init() {
	pullCmd.Flags().StringVar(&pullOutDir, "out", "", "output directory for raw state files (default from config)")
	pullCmd.Flags().StringVar(&pullResumeFrom, "resume-from", "", "skip states before this one")
	rootCmd.AddCommand(pullCmd)
}

// selectStates resolves the state list from args or the full roster, applying
// the resume point when set.
func selectStates(args []string, resumeFrom string) ([]string, error) {
	if len(args) > 0 {
		var states []string
		for _, arg := range args {
			state, ok := matchState(arg)
			if !ok {
				return nil, eris.Errorf("pull: unknown state %q", arg)
			}
			states = append(states, state)
		}
		return states, nil
	}

	if resumeFrom == "" {
		return allStates, nil
	}
	for i, s := range allStates {
		if strings.EqualFold(s, resumeFrom) {
			return allStates[i:], nil
		}
	}
	return nil, eris.Errorf("pull: unknown state %q", resumeFrom)
}

func matchState(name string) (string, bool) {
	for _, s := range allStates {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}

type puller struct {
	client  outscraper.Client
	queries []string
	limit   int
	outDir  string
}

// stateSummary is the per-state entry in pull_summary.json.
type stateSummary struct {
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	Enhanced  bool   `json:"enhanced"`
}

type pullSummary struct {
	Started      string                  `json:"started"`
	States       map[string]stateSummary `json:"states"`
	TotalRecords int                     `json:"total_records"`
	LastUpdated  string                  `json:"last_updated"`
	Completed    string                  `json:"completed,omitempty"`
}

func (p *puller) run(ctx context.Context, states []string) error {
	log := zap.L().With(zap.String("component", "pull"))

	summary, err := p.loadSummary()
	if err != nil {
		return err
	}

	for i, state := range states {
		log.Info("pulling state",
			zap.String("state", state),
			zap.Int("index", i+1),
			zap.Int("total", len(states)),
		)

		count, err := p.pullState(ctx, state)
		entry := stateSummary{
			Count:     count,
			Timestamp: time.Now().Format(time.RFC3339),
			Status:    "success",
			Enhanced:  len(majorMetros[state]) > 0,
		}
		if err != nil {
			if eris.Is(err, context.Canceled) {
				return err
			}
			log.Error("state pull failed", zap.String("state", state), zap.Error(err))
			entry.Status = fmt.Sprintf("error: %v", err)
			entry.Count = 0
		}
		summary.States[state] = entry

		summary.TotalRecords = 0
		for _, s := range summary.States {
			summary.TotalRecords += s.Count
		}
		summary.LastUpdated = time.Now().Format(time.RFC3339)
		if err := p.saveSummary(summary); err != nil {
			return err
		}
	}

	summary.Completed = time.Now().Format(time.RFC3339)
	if err := p.saveSummary(summary); err != nil {
		return err
	}

	log.Info("pull complete",
		zap.Int("states", len(states)),
		zap.Int("total_records", summary.TotalRecords),
	)
	return nil
}

// pullState pulls one state-level search plus a search per major metro,
// deduping by place id across all of them, and writes the state file.
func (p *puller) pullState(ctx context.Context, state string) (int, error) {
	log := zap.L().With(zap.String("component", "pull"), zap.String("state", state))

	var results []json.RawMessage
	seen := make(map[string]struct{})

	stateResults, err := p.pullLocation(ctx, state, seen)
	if err != nil {
		return 0, err
	}
	results = append(results, stateResults...)
	log.Info("state-level pull done", zap.Int("providers", len(stateResults)))

	for _, metro := range majorMetros[state] {
		metroResults, err := p.pullLocation(ctx, metro, seen)
		if err != nil {
			if eris.Is(err, context.Canceled) {
				return 0, err
			}
			// A failed metro should not discard the rest of the state.
			log.Warn("metro pull failed", zap.String("metro", metro), zap.Error(err))
			continue
		}
		results = append(results, metroResults...)
		log.Info("metro pull done", zap.String("metro", metro), zap.Int("new", len(metroResults)))
	}

	slug := strings.ToLower(strings.ReplaceAll(state, " ", "_"))
	path := filepath.Join(p.outDir, slug+".json")
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return 0, eris.Wrap(err, "pull: marshal results")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, eris.Wrapf(err, "pull: write %s", path)
	}

	return len(results), nil
}

// pullLocation runs every configured query against one location and returns
// the result objects whose place id has not been seen before.
func (p *puller) pullLocation(ctx context.Context, location string, seen map[string]struct{}) ([]json.RawMessage, error) {
	queries := make([]string, len(p.queries))
	for i, q := range p.queries {
		queries[i] = q + " " + location
	}

	taskID, err := p.client.SubmitSearch(ctx, queries, p.limit)
	if err != nil {
		return nil, err
	}
	result, err := p.client.WaitForResults(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var fresh []json.RawMessage
	for _, raw := range flattenResults(result.Data) {
		var probe struct {
			PlaceID string `json:"place_id"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil || probe.PlaceID == "" {
			continue
		}
		if _, dup := seen[probe.PlaceID]; dup {
			continue
		}
		seen[probe.PlaceID] = struct{}{}
		fresh = append(fresh, raw)
	}
	return fresh, nil
}

// flattenResults unwraps the API's mixed shape: entries are either result
// objects or arrays of result objects (one per query).
func flattenResults(data []json.RawMessage) []json.RawMessage {
	var out []json.RawMessage
	for _, raw := range data {
		trimmed := strings.TrimLeft(string(raw), " \t\r\n")
		if strings.HasPrefix(trimmed, "[") {
			var nested []json.RawMessage
			if err := json.Unmarshal(raw, &nested); err == nil {
				out = append(out, nested...)
			}
			continue
		}
		if strings.HasPrefix(trimmed, "{") {
			out = append(out, raw)
		}
	}
	return out
}

func (p *puller) summaryPath() string {
	return filepath.Join(p.outDir, "pull_summary.json")
}

func (p *puller) loadSummary() (*pullSummary, error) {
	summary := &pullSummary{
		Started: time.Now().Format(time.RFC3339),
		States:  make(map[string]stateSummary),
	}

	data, err := os.ReadFile(p.summaryPath())
	if os.IsNotExist(err) {
		return summary, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "pull: read summary")
	}
	if err := json.Unmarshal(data, summary); err != nil {
		return nil, eris.Wrap(err, "pull: parse summary")
	}
	if summary.States == nil {
		summary.States = make(map[string]stateSummary)
	}
	return summary, nil
}

func (p *puller) saveSummary(summary *pullSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return eris.Wrap(err, "pull: marshal summary")
	}
	return eris.Wrap(os.WriteFile(p.summaryPath(), data, 0o644), "pull: write summary")
}
