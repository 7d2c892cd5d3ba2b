package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sling/internal/diag"
	"sling/internal/source"
)

// maxDiagnostics читает глобальный флаг --max-diagnostics.
func maxDiagnostics(cmd *cobra.Command) (int, error) {
	v, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return v, nil
}

// useColor решает, красить ли вывод в указанный файл.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// renderDiagnostics печатает все диагностики из bag в stderr.
func renderDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	_ = diag.Render(os.Stderr, bag, fs, diag.RenderOptions{
		Color:      useColor(cmd, os.Stderr),
		ShowSource: true,
	})
}

// resolveTUI решает по значению --ui, показывать ли интерактивный
// прогресс: auto привязывается к терминальности stdout.
func resolveTUI(flag string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(flag)) {
	case "", "auto":
		return isTerminal(os.Stdout), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", flag)
	}
}

// diagExitError превращает наличие ошибок в ненулевой код выхода,
// не дублируя уже напечатанные диагностики.
func diagExitError(bag *diag.Bag) error {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	if n == 1 {
		return fmt.Errorf("1 error")
	}
	return fmt.Errorf("%d errors", n)
}
