/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"
	perrors "github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/wind-river/cloud-platform-vswitch-resolver/vswitch"
)

const (
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

type hostView struct {
	Hostname string   `json:"hostname"`
	Kind     string   `json:"kind"`
	Labels   []string `json:"labels"`
}

type reportView struct {
	Outcome   string     `json:"outcome"`
	Source    string     `json:"source"`
	Labels    []string   `json:"labels"`
	Conflicts []string   `json:"conflicts,omitempty"`
	Hosts     []hostView `json:"hosts,omitempty"`
}

func newReportView(report *vswitch.Resolution, verbose bool) reportView {
	result := reportView{
		Outcome:   report.Result.Outcome().String(),
		Source:    string(report.Source),
		Labels:    vswitch.TokenStrings(report.Result.Labels()),
		Conflicts: vswitch.TokenStrings(report.Result.Conflicts()),
	}

	if verbose {
		result.Hosts = lo.Map(report.Hosts, func(h vswitch.HostSignature, _ int) hostView {
			return hostView{
				Hostname: h.Hostname,
				Kind:     h.Signature.Kind().String(),
				Labels:   vswitch.TokenStrings(h.Signature.Tokens()),
			}
		})
	}

	return result
}

// writeReport renders a report in the requested format.  The CSV format only
// carries the resolved labels.
func writeReport(w io.Writer, report *vswitch.Resolution, format string, verbose bool) error {
	switch format {
	case FormatCSV:
		_, err := fmt.Fprintln(w, strings.Join(vswitch.TokenStrings(report.Result.Labels()), ","))
		return err
	case FormatYAML:
		buf, err := yaml.Marshal(newReportView(report, verbose))
		if err != nil {
			return err
		}
		_, err = w.Write(buf)
		return err
	}

	return perrors.Errorf("unsupported output format %q", format)
}

type catalogView struct {
	ComputeLabel string     `json:"computeLabel"`
	Combinations [][]string `json:"combinations"`
	Override     struct {
		Chart string `json:"chart,omitempty"`
		Path  string `json:"path,omitempty"`
	} `json:"override"`
}

// writeCatalog renders the effective resolver configuration.
func writeCatalog(w io.Writer, config vswitch.Config) error {
	var view catalogView
	view.ComputeLabel = string(config.ComputeLabel)
	view.Combinations = lo.Map(config.Catalog.AllowedCombinations(), func(c vswitch.Combination, _ int) []string {
		return vswitch.TokenStrings(c.Tokens())
	})
	view.Override.Chart = config.Override.Chart
	view.Override.Path = config.Override.Path

	buf, err := yaml.Marshal(view)
	if err != nil {
		return err
	}

	_, err = w.Write(buf)
	return err
}
