package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/ThatOtherAndrew/Unistroke/pkg/alphabet"
)

type Settings struct {
	AlphabetPath     string  `json:"alphabet_path"`
	MinPointDistance int     `json:"min_point_distance"`
	MaxPoints        int     `json:"max_points"`
	RenderWidth      int     `json:"render_width"`
	RenderHeight     int     `json:"render_height"`
	RenderBorder     int     `json:"render_border"`
	StrokeWidth      float32 `json:"stroke_width"`
}

const maxStrokeWidth = 64

func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "unistroke")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}

func GetSettingsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

// Default returns the settings used when the file at settingsPath is
// missing or unreadable. The alphabet lives next to the settings file.
func Default(settingsPath string) *Settings {
	return &Settings{
		AlphabetPath:     filepath.Join(filepath.Dir(settingsPath), "alphabet.aucr"),
		MinPointDistance: 2,
		MaxPoints:        2048,
		RenderWidth:      240,
		RenderHeight:     320,
		RenderBorder:     16,
		StrokeWidth:      6,
	}
}

func LoadSettings() (*Settings, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(settingsPath)
}

func LoadSettingsFrom(settingsPath string) (*Settings, error) {
	defaultSettings := Default(settingsPath)

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Creating default settings file at %s", settingsPath)
			if err := createDefaultSettings(settingsPath, defaultSettings); err != nil {
				log.Printf("Failed to create default settings file: %v", err)
			}
			return defaultSettings, nil
		}
		return nil, err
	}

	// Check for unrecognised keys
	var rawSettings map[string]any
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings, nil
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			log.Printf("Warning: unrecognised setting key '%s' in settings file", key)
		}
	}

	// missing keys keep their defaults
	settings := *defaultSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings, nil
	}

	validate(&settings, defaultSettings)
	return &settings, nil
}

func validate(s, def *Settings) {
	if s.AlphabetPath == "" {
		log.Printf("Empty alphabet_path, using default %s", def.AlphabetPath)
		s.AlphabetPath = def.AlphabetPath
	}
	if s.MinPointDistance < 0 {
		log.Printf("Invalid min_point_distance value %d, must not be negative, using default %d",
			s.MinPointDistance, def.MinPointDistance)
		s.MinPointDistance = def.MinPointDistance
	}
	if s.MaxPoints < 2 {
		log.Printf("Invalid max_points value %d, must be at least 2, using default %d",
			s.MaxPoints, def.MaxPoints)
		s.MaxPoints = def.MaxPoints
	}
	if s.RenderWidth < 1 || s.RenderWidth > alphabet.MaxRect {
		log.Printf("Invalid render_width value %d, must be between 1 and %d, using default %d",
			s.RenderWidth, alphabet.MaxRect, def.RenderWidth)
		s.RenderWidth = def.RenderWidth
	}
	if s.RenderHeight < 1 || s.RenderHeight > alphabet.MaxRect {
		log.Printf("Invalid render_height value %d, must be between 1 and %d, using default %d",
			s.RenderHeight, alphabet.MaxRect, def.RenderHeight)
		s.RenderHeight = def.RenderHeight
	}
	if s.RenderBorder < 0 || 2*s.RenderBorder >= min(s.RenderWidth, s.RenderHeight) {
		log.Printf("Invalid render_border value %d, using default %d", s.RenderBorder, def.RenderBorder)
		s.RenderBorder = def.RenderBorder
		if 2*s.RenderBorder >= min(s.RenderWidth, s.RenderHeight) {
			s.RenderBorder = 0
		}
	}
	if s.StrokeWidth <= 0 || s.StrokeWidth > maxStrokeWidth {
		log.Printf("Invalid stroke_width value %.2f, must be between 0 and %d, using default %.2f",
			s.StrokeWidth, maxStrokeWidth, def.StrokeWidth)
		s.StrokeWidth = def.StrokeWidth
	}
}

// Rect is the reconstruction rectangle described by the render settings.
func (s *Settings) Rect() alphabet.Rect {
	return alphabet.Rect{Width: s.RenderWidth, Height: s.RenderHeight, Border: s.RenderBorder}
}

func createDefaultSettings(path string, settings *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v any) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
