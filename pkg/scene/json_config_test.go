package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const testSceneJSON = `{
  "name": "Test Scene",
  "camera": {"origin": [0, 0, 10], "direction": [0, 0, -2], "nearOffset": 0},
  "spheres": [
    {"radius": 2, "center": [0, 5, 0], "emission": {"constant": 4}, "light": true},
    {"radius": 1, "center": [0, 0, 0], "reflectance": {"rgb": [0.8, 0.2, 0.1]}, "material": "diffuse"},
    {"radius": 1e5, "center": [0, -100001, 0], "reflectance": {"constant": 0.5}}
  ]
}`

func TestParseJSON(t *testing.T) {
	s, err := ParseJSON([]byte(testSceneJSON))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	if s.Len() != 3 || s.LightID() != 0 {
		t.Fatalf("Expected 3 spheres with light 0, got %d and %d", s.Len(), s.LightID())
	}
	if le := s.Emission(600); le != 4 {
		t.Errorf("Expected emission 4, got %v", le)
	}

	cam := s.Camera()
	if !cam.Origin.ApproxEqual(mgl64.Vec3{0, 0, 10}) {
		t.Errorf("Camera origin %v", cam.Origin)
	}
	if !cam.Direction.ApproxEqual(mgl64.Vec3{0, 0, -1}) {
		t.Errorf("Camera direction not normalized: %v", cam.Direction)
	}
	if cam.NearOffset != 0 || cam.FieldScale != DefaultCameraConfig().FieldScale {
		t.Errorf("Camera near/field: %v %v", cam.NearOffset, cam.FieldScale)
	}

	// RGB reflectance is a spectrum in [0, 1] that reads back as reddish
	refl := s.Sphere(1).Reflectance
	for i, v := range refl {
		if v < 0 || v > 1 {
			t.Fatalf("Reflectance %v out of range at bucket %d", v, i)
		}
	}
	rgb := refl.ToRGB()
	if !(rgb.X() > rgb.Y() && rgb.X() > rgb.Z()) {
		t.Errorf("Expected red to dominate, got %v", rgb)
	}
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr error
		substr  string
	}{
		{"malformed", `{"spheres": [`, nil, "failed to parse"},
		{"no spheres", `{"spheres": []}`, nil, "no spheres"},
		{"no light", `{"spheres": [{"radius": 1, "center": [0,0,0]}]}`, ErrNoLight, ""},
		{"two lights", `{"spheres": [{"radius": 1, "light": true}, {"radius": 1, "light": true}]}`, nil, "both marked"},
		{"bad radius", `{"spheres": [{"radius": -1, "light": true}]}`, ErrInvalidRadius, ""},
		{"bad material", `{"spheres": [{"radius": 1, "light": true, "material": "glass"}]}`, nil, "unknown material"},
		{"short values", `{"spheres": [{"radius": 1, "light": true, "emission": {"values": [1, 2]}}]}`, nil, "95 values"},
		{"short rgb", `{"spheres": [{"radius": 1, "light": true, "reflectance": {"rgb": [1]}}]}`, nil, "rgb needs 3"},
		{"white reflectance", `{"spheres": [{"radius": 1, "light": true}, {"radius": 50, "reflectance": {"constant": 1}}]}`, ErrInvalidReflectance, ""},
		{"negative reflectance", `{"spheres": [{"radius": 1, "light": true}, {"radius": 1, "reflectance": {"constant": -0.5}}]}`, ErrInvalidReflectance, ""},
		{"negative emission", `{"spheres": [{"radius": 1, "light": true, "emission": {"constant": -2}}]}`, ErrInvalidEmission, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.json))
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if tt.substr != "" && !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("Error %q does not mention %q", err, tt.substr)
			}
		})
	}
}

func TestParseJSON_SpectrumValues(t *testing.T) {
	values := make([]string, 95)
	for i := range values {
		values[i] = "0"
	}
	values[40] = "3" // 560nm
	data := `{"spheres": [{"radius": 1, "light": true, "emission": {"values": [` + strings.Join(values, ",") + `]}}]}`

	s, err := ParseJSON([]byte(data))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if le := s.Emission(560); le != 3 {
		t.Errorf("Expected 3 at 560nm, got %v", le)
	}
	if le := s.Emission(565); le != 0 {
		t.Errorf("Expected 0 at 565nm, got %v", le)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(testSceneJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if math.Abs(s.Sphere(2).Radius-1e5) > 0 {
		t.Errorf("Expected floor radius 1e5, got %v", s.Sphere(2).Radius)
	}

	if _, err := LoadJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestParseJSON_SaturatedRGBReflectance(t *testing.T) {
	data := `{"spheres": [{"radius": 1, "light": true}, {"radius": 1, "reflectance": {"rgb": [1, 1, 1]}}]}`
	s, err := ParseJSON([]byte(data))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	refl := s.Sphere(1).Reflectance
	if refl.Max() > 1 {
		t.Errorf("Expected RGB reflectance clamped to 1, got max %v", refl.Max())
	}
	if refl[0] >= 1 {
		t.Errorf("Expected bucket 0 below 1, got %v", refl[0])
	}
}
