package runner_test

import (
	"fmt"
	"strings"
	"testing"

	"collectarr/internal/reconcile"
	"collectarr/internal/runner"
)

func TestFormatMessage(t *testing.T) {
	summary := reconcile.Summary{
		Monitored: 1,
		Added:     2,
		Collections: []reconcile.CollectionReport{
			{Name: "Alien Series", Lines: []string{reconcile.MonitoredLine("Alien", 1979)}},
			{Name: "Mad Max", Lines: []string{
				reconcile.AddedLine("Fury Road", 2015),
				reconcile.AddedLine("Furiosa", 2024),
			}},
		},
	}

	msg := runner.FormatMessage(summary)
	want := "🎬 *Radarr Collections updated!*\n" +
		"\n" +
		"1 existing movies set as monitored.\n" +
		"2 movies added and monitored.\n" +
		"\n" +
		"Per collection overview:\n" +
		"\n" +
		"*Alien Series*\n" +
		"• \\[Set as monitored] Alien (1979)\n" +
		"\n" +
		"*Mad Max*\n" +
		"• \\[Added & monitored] Fury Road (2015)\n" +
		"• \\[Added & monitored] Furiosa (2024)"
	if msg.Body != want {
		t.Fatalf("unexpected body:\n%s\nwant:\n%s", msg.Body, want)
	}
	if msg.Title == "" {
		t.Fatal("expected a title for channels that show one")
	}
}

func TestFormatMessageEscapesUserText(t *testing.T) {
	tests := []struct {
		name    string
		heading string
		want    string
		notWant string
	}{
		{name: "plain", heading: "Alien Series", want: "\n*Alien Series*\n"},
		{name: "underscore stays raw inside bold", heading: "Mad_Max [Trilogy]", want: "\n*Mad_Max [Trilogy]*\n", notWant: "\\_"},
		{name: "bold marker drops bold", heading: "The *Best* [Films]_", want: "\nThe \\*Best\\* \\[Films]\\_\n", notWant: "*The"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			summary := reconcile.Summary{
				Added: 1,
				Collections: []reconcile.CollectionReport{
					{Name: tc.heading, Lines: []string{reconcile.AddedLine("Code `42`", 2000)}},
				},
			}
			body := runner.FormatMessage(summary).Body
			if !strings.Contains(body, tc.want) {
				t.Fatalf("expected heading %q in:\n%s", tc.want, body)
			}
			if tc.notWant != "" && strings.Contains(body, tc.notWant) {
				t.Fatalf("unexpected %q in:\n%s", tc.notWant, body)
			}
			if want := "Code \\`42\\` (2000)"; !strings.Contains(body, want) {
				t.Fatalf("expected escaped title %q in:\n%s", want, body)
			}
		})
	}
}

func TestFormatMessageStaysWithinTelegramLimit(t *testing.T) {
	var summary reconcile.Summary
	for i := range 200 {
		summary.Added++
		summary.Collections = append(summary.Collections, reconcile.CollectionReport{
			Name:  fmt.Sprintf("Collection %03d", i),
			Lines: []string{reconcile.AddedLine(fmt.Sprintf("Movie %03d", i), 2000)},
		})
	}

	body := runner.FormatMessage(summary).Body
	if len(body) > 4096 {
		t.Fatalf("expected body within 4096 bytes, got %d", len(body))
	}
	if !strings.Contains(body, "*Collection 000*") {
		t.Fatalf("expected leading collections kept:\n%s", body)
	}
	if strings.Contains(body, "*Collection 199*") {
		t.Fatal("expected trailing collections dropped")
	}
	shown := strings.Count(body, "\n*Collection ")
	if want := fmt.Sprintf("… and %d more collections", 200-shown); !strings.HasSuffix(body, want) {
		t.Fatalf("expected overflow line %q, got tail %q", want, body[len(body)-60:])
	}
}

func TestFormatMessageKeepsEverythingThatFits(t *testing.T) {
	summary := reconcile.Summary{
		Monitored:   1,
		Collections: []reconcile.CollectionReport{{Name: "Alien Series", Lines: []string{reconcile.MonitoredLine("Alien", 1979)}}},
	}
	body := runner.FormatMessage(summary).Body
	if strings.Contains(body, "more collections") {
		t.Fatalf("unexpected overflow line:\n%s", body)
	}
}
