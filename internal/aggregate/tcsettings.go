package aggregate

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/meshbench/meshbench/internal/walker"
	"github.com/meshbench/meshbench/pkg/bench/model"
	"github.com/meshbench/meshbench/pkg/bench/spec"
)

// LoadTCSettings returns the traffic-control settings recorded for the
// given VPN and run alias, or nil if no usable settings artifact exists.
// The settings file carries TCSettingsData directly, without the
// success/error envelope.
func LoadTCSettings(artifacts []walker.Artifact, vpn, alias string) *model.TCSettingsData {
	for _, a := range artifacts {
		if !matchesTCSettings(a.Segments, vpn, alias) {
			continue
		}
		return parseTCSettings(a)
	}
	return nil
}

// LoadTCSettingsForRunAlias returns the settings recorded for the given run
// alias by any VPN, excluding the General namespace. Impairment settings
// are identical across VPNs for a given alias, and comparison views have no
// single owning VPN to key on. Unlike the per-VPN lookup, the scan keeps
// going past unusable candidates, since another VPN's copy may be intact.
func LoadTCSettingsForRunAlias(artifacts []walker.Artifact, alias string) *model.TCSettingsData {
	for _, a := range artifacts {
		if !matchesTCSettings(a.Segments, "", alias) {
			continue
		}
		if inGeneralNamespace(a.Segments) {
			continue
		}
		if settings := parseTCSettings(a); settings != nil {
			return settings
		}
	}
	return nil
}

func matchesTCSettings(segments []string, vpn, alias string) bool {
	n := len(segments)
	if n < 3 || segments[n-1] != spec.FileTCSettings || segments[n-2] != alias {
		return false
	}
	return vpn == "" || segments[n-3] == vpn
}

func inGeneralNamespace(segments []string) bool {
	for _, s := range segments {
		if s == spec.GeneralNamespace {
			return true
		}
	}
	return false
}

func parseTCSettings(a walker.Artifact) *model.TCSettingsData {
	var settings model.TCSettingsData
	if err := json.Unmarshal(a.Content, &settings); err != nil {
		log.Warn("cannot parse tc settings", "path", a.Path, "error", err)
		return nil
	}
	if settings.Alias == "" {
		log.Warn("tc settings file has no alias", "path", a.Path)
		return nil
	}
	return &settings
}
