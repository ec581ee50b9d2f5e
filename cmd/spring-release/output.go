package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spring-operator/spring-release/release"
)

// Output formats for the resolved release context.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
	formatEnv  = "env"
)

var formats = []string{formatText, formatJSON, formatYAML, formatTOML, formatEnv}

// validFormat reports whether name is a known output format.
func validFormat(name string) bool {
	for _, f := range formats {
		if name == f {
			return true
		}
	}
	return false
}

// formatList renders the known formats for error messages.
func formatList() string {
	return strings.Join(formats, "|")
}

// renderContext writes the release context to w in the requested format.
// Everything except text is machine-readable; text is a styled summary for
// humans.
func renderContext(w io.Writer, rc release.Context, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(rc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render context as JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case formatYAML:
		data, err := yaml.Marshal(rc)
		if err != nil {
			return fmt.Errorf("failed to render context as YAML: %w", err)
		}
		_, err = fmt.Fprint(w, string(data))
		return err

	case formatTOML:
		data, err := toml.Marshal(rc)
		if err != nil {
			return fmt.Errorf("failed to render context as TOML: %w", err)
		}
		_, err = fmt.Fprint(w, string(data))
		return err

	case formatEnv:
		for _, pair := range rc.Environ() {
			if _, err := fmt.Fprintln(w, pair); err != nil {
				return err
			}
		}
		return nil

	default:
		return renderText(w, rc)
	}
}

// renderText writes the human-readable context summary. Rows with empty
// values are left out entirely.
func renderText(w io.Writer, rc release.Context) error {
	rows := []struct {
		label, value string
		styled       bool
	}{
		{"stage", rc.Stage.String(), false},
		{"status", rc.Status, false},
		{"version", rc.Version, true},
		{"tag", rc.TagName, true},
		{"previous", rc.PreviousTag, false},
		{"remote", describeSCM(rc.SCM), false},
	}

	for _, row := range rows {
		if row.value == "" {
			continue
		}
		value := row.value
		if row.styled {
			value = ValueStyle.Render(value)
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", SubtitleStyle.Render(fmt.Sprintf("%-9s", row.label)), value); err != nil {
			return err
		}
	}
	return nil
}

// describeSCM summarizes the remote for the text format: the forge
// coordinates when the URL parsed, the raw URL otherwise, empty when no
// remote is configured.
func describeSCM(scm release.SCM) string {
	if !scm.Enabled() {
		return ""
	}
	if scm.Host != "" && scm.Owner != "" && scm.Repo != "" {
		return fmt.Sprintf("%s/%s/%s", scm.Host, scm.Owner, scm.Repo)
	}
	return scm.URL
}
