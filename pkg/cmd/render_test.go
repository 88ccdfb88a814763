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
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"gitlab.com/davidxarnold/costglance/pkg/core"
)

func sampleAttributes() core.AttributeSet {
	return core.AttributeSet{
		core.KeyInstanceID:    "i-abc123",
		core.KeyInstanceType:  "t3.micro",
		core.KeyRegion:        "us-east-1",
		core.KeyOSType:        core.OSTypeLinux,
		core.KeyCloudPlatform: core.PlatformAWSEC2,
		core.KeyLicenseModel:  core.LicenseModelNone,
		core.KeyTenancy:       "default",
	}
}

func TestRenderTableIncludesEveryKey(t *testing.T) {
	viper.Set("output", "table")
	defer viper.Set("output", "table")

	var buf bytes.Buffer
	if err := render(&buf, sampleAttributes()); err != nil {
		t.Fatalf("render returned error: %v", err)
	}

	out := buf.String()
	for key := range sampleAttributes() {
		if !strings.Contains(out, key) {
			t.Errorf("table output missing key %q:\n%s", key, out)
		}
	}
	if !strings.Contains(out, "i-abc123") {
		t.Errorf("table output missing instance id:\n%s", out)
	}
}

func TestRenderJSON(t *testing.T) {
	viper.Set("output", "json")
	defer viper.Set("output", "table")

	var buf bytes.Buffer
	if err := render(&buf, sampleAttributes()); err != nil {
		t.Fatalf("render returned error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("render produced invalid JSON: %v", err)
	}

	if decoded[core.KeyInstanceID] != "i-abc123" {
		t.Errorf("unexpected instance id in JSON output: %v", decoded[core.KeyInstanceID])
	}
	if len(decoded) != len(sampleAttributes()) {
		t.Errorf("expected %d keys, got %d", len(sampleAttributes()), len(decoded))
	}
}
