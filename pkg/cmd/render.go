/*
Copyright 2025 David Arnold
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	pt "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/viper"

	"gitlab.com/davidxarnold/costglance/pkg/core"
)

// render writes the attribute set in the configured output format.
func render(w io.Writer, attrs core.AttributeSet) error {
	switch strings.ToLower(viper.GetString("output")) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(attrs)
	default:
		t := pt.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(pt.Row{"Attribute", "Value"})
		for _, key := range sortedKeys(attrs) {
			t.AppendRow(pt.Row{key, fmt.Sprint(attrs[key])})
		}
		t.Render()
		return nil
	}
}

func sortedKeys(attrs core.AttributeSet) []string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
