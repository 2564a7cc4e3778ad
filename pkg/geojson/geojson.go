// Package geojson converts map layer FeatureCollections to plot records and back.
package geojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"sawah/entities"
)

// GroupRing is the outer sawah ring layer whose features are numbered bloks.
const GroupRing = "sawahring"

var (
	ErrNotFeatureCollection = errors.New("not a GeoJSON FeatureCollection")
	ErrInvalidJSON          = errors.New("invalid json")
	// ErrInvalidSource: empty group or file, or a group holding '-'.
	ErrInvalidSource = errors.New("invalid layer group or file")
)

// IsDecodeError reports whether err comes from bad input rather than storage.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrNotFeatureCollection) || errors.Is(err, ErrInvalidJSON) || errors.Is(err, ErrInvalidSource)
}

var blokRX = regexp.MustCompile(`(?i)blok\s+(\d+)`)

// PlotID is the stable id of the i-th feature of file within group. With no
// '-' in group the id splits back at its first and last '-', so distinct
// sources never share an id.
func PlotID(group, file string, i int) string { return fmt.Sprintf("%s-%s-%d", group, file, i) }

// CheckSource validates the (group, file) pair a layer is loaded as.
func CheckSource(group, file string) error {
	switch {
	case group == "" || file == "":
		return fmt.Errorf("group and file are required: %w", ErrInvalidSource)
	case strings.Contains(group, "-"):
		return fmt.Errorf("group %q must not contain '-': %w", group, ErrInvalidSource)
	}
	return nil
}

// Decode reads a FeatureCollection loaded as file in group.
func Decode(group, file string, data []byte) ([]entities.Plot, error) {
	if err := CheckSource(group, file); err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: %w", file, ErrInvalidJSON)
	}
	root := gjson.ParseBytes(data)
	feats := root.Get("features")
	if root.Get("type").String() != "FeatureCollection" || !feats.IsArray() {
		return nil, fmt.Errorf("%s: %w", file, ErrNotFeatureCollection)
	}

	out := make([]entities.Plot, 0, len(feats.Array()))
	i := 0
	feats.ForEach(func(_, f gjson.Result) bool {
		props := f.Get("properties")
		if !props.IsObject() {
			props = gjson.Parse("{}")
		}
		p := entities.Plot{
			PlotID:          PlotID(group, file, i),
			Group:           group,
			SourceFile:      file,
			Ord:             i,
			Name:            props.Get("name").String(),
			DescriptionText: description(props.Get("description")),
			CurrentFill:     props.Get("fill").String(),
			GeometryJSON:    f.Get("geometry").Raw,
			PropertiesJSON:  props.Raw,
		}
		if group == GroupRing {
			if m := blokRX.FindStringSubmatch(p.Name); m != nil {
				p.BlokNo = m[1]
			}
		}
		out = append(out, p)
		i++
		return true
	})
	return out, nil
}

// description handles both "description": "..." and KML-style
// "description": {"@type": "html", "value": "..."}.
func description(d gjson.Result) string {
	if d.IsObject() {
		return d.Get("value").String()
	}
	return d.String()
}

type feature struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

type collection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

// Encode renders plots as a FeatureCollection, carrying the original
// properties with _id, fill and blok_no refreshed.
func Encode(plots []entities.Plot) ([]byte, error) {
	fc := collection{Type: "FeatureCollection", Features: make([]feature, 0, len(plots))}
	for _, p := range plots {
		props := map[string]any{}
		if strings.TrimSpace(p.PropertiesJSON) != "" {
			if err := json.Unmarshal([]byte(p.PropertiesJSON), &props); err != nil {
				return nil, fmt.Errorf("plot %s properties: %w", p.PlotID, err)
			}
			if props == nil {
				props = map[string]any{}
			}
		}
		props["_id"] = p.PlotID
		props["name"] = p.Name
		props["fill"] = p.CurrentFill
		if p.OriginalFill != nil {
			props["originalFill"] = *p.OriginalFill
		}
		if p.BlokNo != "" {
			props["blok_no"] = p.BlokNo
		}
		geom := json.RawMessage("null")
		if strings.TrimSpace(p.GeometryJSON) != "" {
			geom = json.RawMessage(p.GeometryJSON)
		}
		fc.Features = append(fc.Features, feature{Type: "Feature", Properties: props, Geometry: geom})
	}
	return json.Marshal(fc)
}
