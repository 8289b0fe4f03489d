package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/anshul/litmus/internal/config"
	"github.com/anshul/litmus/internal/llm"
	"github.com/anshul/litmus/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().RecentLLMEvents(context.Background(), limit, purpose)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-18s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 104))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-5d  %-19s  %-18s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the configured LLM provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		llmCfg := resolveLLMConfig()
		if err := llmCfg.Validate(); err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := context.WithTimeout(context.Background(), llmCfg.Timeout)
		defer cancel()

		provider, err := llm.NewProvider(ctx, llmCfg, s.EventRepo())
		if err != nil {
			return fmt.Errorf("init provider: %w", err)
		}

		start := time.Now()
		resp, err := provider.Generate(llm.WithPurpose(ctx, "connectivity-check"), llm.Request{
			Messages: []llm.Message{
				{Role: llm.RoleUser, Content: "Reply with the single word: ok"},
			},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("provider %s unreachable: %w", llmCfg.Provider, err)
		}

		fmt.Printf("Provider:  %s\n", llmCfg.Provider)
		fmt.Printf("Model:     %s\n", resp.Model)
		fmt.Printf("Latency:   %dms\n", time.Since(start).Milliseconds())
		fmt.Printf("Response:  %s\n", strings.TrimSpace(string(resp.Content)))
		return nil
	},
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath := config.Load().DBPath
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		dbPath = p
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. question-generation, feedback, summary)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmCheckCmd)
}
