// Package profile holds the user preference document consumed by matching and ranking.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LocationPreference is the user's stance on where the work happens.
type LocationPreference string

const (
	LocationRemote LocationPreference = "remote"
	LocationOnSite LocationPreference = "on_site"
	LocationEither LocationPreference = "either"
)

// ErrParse wraps every failure to turn a profile document into a Profile.
var ErrParse = errors.New("parse profile")

var validate = validator.New()

var locationPreferenceType = reflect.TypeOf(LocationPreference(""))

type Profile struct {
	Skills               []string           `json:"skills,omitempty" mapstructure:"skills"`
	DesiredSkills        []string           `json:"desired_skills,omitempty" mapstructure:"desired_skills"`
	Values               []string           `json:"values,omitempty" mapstructure:"values"`
	MissionKeywords      []string           `json:"mission_keywords,omitempty" mapstructure:"mission_keywords"`
	DesiredSalary        float64            `json:"desired_salary,omitempty" mapstructure:"desired_salary" validate:"gte=0"`
	RemotePreference     bool               `json:"remote_preference,omitempty" mapstructure:"remote_preference"`
	LocationPreference   LocationPreference `json:"location_preference,omitempty" mapstructure:"location_preference" validate:"omitempty,oneof=remote on_site either"`
	PreferredCompanySize []string           `json:"preferred_company_size,omitempty" mapstructure:"preferred_company_size"`
	ResumeText           string             `json:"resume_text,omitempty" mapstructure:"resume_text"`
}

// AllSkills returns skills and desired skills, in that order.
func (p *Profile) AllSkills() []string {
	out := make([]string, 0, len(p.Skills)+len(p.DesiredSkills))
	out = append(out, p.Skills...)
	return append(out, p.DesiredSkills...)
}

// Parse decodes a JSON profile document.
func Parse(data []byte) (*Profile, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return FromMap(raw)
}

// LoadFile reads a JSON or YAML profile document.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return FromMap(raw)
	default:
		return Parse(data)
	}
}

// FromMap decodes an already parsed document, e.g. one embedded in the config file.
func FromMap(raw map[string]any) (*Profile, error) {
	var p Profile

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			locationPreferenceHook,
			remotePreferenceHook,
		),
		Result: &p,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if p.LocationPreference == "" {
		p.LocationPreference = preferenceFromRemote(raw["remote_preference"])
	}

	if err := validate.Struct(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return &p, nil
}

// locationPreferenceHook accepts a boolean location_preference: true means remote, false means on site.
// Strings are lowercased and "on-site"/"onsite" collapse to on_site.
func locationPreferenceHook(_ reflect.Type, t reflect.Type, data any) (any, error) {
	if t != locationPreferenceType {
		return data, nil
	}

	switch v := data.(type) {
	case bool:
		if v {
			return string(LocationRemote), nil
		}
		return string(LocationOnSite), nil
	case string:
		return normalizeLocation(v), nil
	default:
		return data, nil
	}
}

// normalizeLocation lowercases s and collapses the on-site spellings to on_site.
func normalizeLocation(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "on-site", "onsite", "on site", "office":
		return string(LocationOnSite)
	}
	return s
}

// preferenceFromRemote maps a raw remote_preference onto the location enum.
// A false boolean says nothing about on-site work and yields no preference.
func preferenceFromRemote(v any) LocationPreference {
	switch val := v.(type) {
	case bool:
		if val {
			return LocationRemote
		}
	case string:
		switch normalizeLocation(val) {
		case "remote", "true", "yes":
			return LocationRemote
		case string(LocationOnSite):
			return LocationOnSite
		case string(LocationEither):
			return LocationEither
		}
	}
	return ""
}

// remotePreferenceHook lets remote_preference be given as the location enum as well.
func remotePreferenceHook(_ reflect.Type, t reflect.Type, data any) (any, error) {
	if t.Kind() != reflect.Bool {
		return data, nil
	}

	s, ok := data.(string)
	if !ok {
		return data, nil
	}

	switch normalizeLocation(s) {
	case "remote", "true", "yes":
		return true, nil
	case string(LocationOnSite), "false", "no", string(LocationEither), "":
		return false, nil
	default:
		return nil, fmt.Errorf("unsupported remote preference %q", s)
	}
}
