package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sling/internal/driver"
	"sling/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.sl",
	Short: "Tokenize a sling source file",
	Long:  `Tokenize breaks down a sling source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type tokenPayload struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, maxDiags)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	renderDiagnostics(cmd, result.Bag, result.FileSet)

	switch format {
	case "pretty":
		for _, tok := range result.Tokens {
			start, _ := result.FileSet.Resolve(tok.Span)
			if tok.Kind == token.EOF {
				fmt.Fprintf(os.Stdout, "%d:%d\t%s\n", start.Line, start.Col, tok.Kind)
				continue
			}
			fmt.Fprintf(os.Stdout, "%d:%d\t%s\t%q\n", start.Line, start.Col, tok.Kind, tok.Text)
		}
	case "json":
		payload := make([]tokenPayload, 0, len(result.Tokens))
		for _, tok := range result.Tokens {
			start, _ := result.FileSet.Resolve(tok.Span)
			payload = append(payload, tokenPayload{
				Kind: tok.Kind.String(),
				Text: tok.Text,
				Line: start.Line,
				Col:  start.Col,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Bag.HasErrors() {
		return diagExitError(result.Bag)
	}
	return nil
}
