// Package export serializes finished layouts: an ordered YAML
// document for tooling and a plain-text tile render for eyeballing
// results in a terminal.
package export

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/DiceT/ruins-and-realms-sub003/internal/analysis"
	"github.com/DiceT/ruins-and-realms-sub003/internal/dungeon"
	"github.com/DiceT/ruins-and-realms-sub003/internal/walls"
)

// Document is the YAML form of one generated layout plus its
// analysis.
type Document struct {
	Seed       int64  `yaml:"seed"`
	GridWidth  int    `yaml:"grid_width"`
	GridHeight int    `yaml:"grid_height"`
	Entrance   string `yaml:"entrance"`
	StartRoom  string `yaml:"start_room"`
	ExitRoom   string `yaml:"exit_room"`

	HeatBands map[string]int `yaml:"heat_bands"`

	Rooms   map[string]*RoomYAML `yaml:"rooms"`
	Objects []ObjectYAML         `yaml:"objects"`
}

// RoomYAML is one room entry. Exits keep their creation order; a
// room can hold several exits on one side, so they are a list rather
// than a compass map.
type RoomYAML struct {
	Bounds     string   `yaml:"bounds"`
	Type       string   `yaml:"type"`
	Class      string   `yaml:"class"`
	Cost       string   `yaml:"cost"`
	Traversals int      `yaml:"traversals"`
	Exits      []string `yaml:"exits,omitempty"`
}

// ObjectYAML is one placed object entry.
type ObjectYAML struct {
	Type string `yaml:"type"`
	Pos  string `yaml:"pos"`
}

// FromDungeon builds the document for a layout and its analysis.
func FromDungeon(data *dungeon.DungeonData, res *analysis.Result) *Document {
	doc := &Document{
		Seed:       data.Seed,
		GridWidth:  data.GridWidth,
		GridHeight: data.GridHeight,
		Entrance:   fmt.Sprintf("%d,%d", data.Entrance.X, data.Entrance.Y),
		StartRoom:  roomID(data.StartRoomID),
		ExitRoom:   roomID(data.ExitRoomID),
		HeatBands:  heatBands(data),
		Rooms:      make(map[string]*RoomYAML, len(data.Rooms)),
	}

	for _, r := range data.Rooms {
		entry := &RoomYAML{
			Bounds: fmt.Sprintf("%d,%d %dx%d",
				r.Bounds.MinX, r.Bounds.MinY, r.Bounds.Width(), r.Bounds.Height()),
			Type:       r.Type.String(),
			Class:      r.Class.String(),
			Cost:       costLabel(res.RoomCosts[r.ID]),
			Traversals: res.RoomTraversals[r.ID],
		}
		for _, e := range r.Exits {
			entry.Exits = append(entry.Exits, e.Dir.String()+" -> "+exitTarget(e))
		}
		doc.Rooms[roomID(r.ID)] = entry
	}

	for _, obj := range data.Objects {
		doc.Objects = append(doc.Objects, ObjectYAML{
			Type: obj.Type.String(),
			Pos:  fmt.Sprintf("%d,%d", obj.Pos.X, obj.Pos.Y),
		})
	}

	return doc
}

func roomID(id int) string {
	if id < 0 {
		return "none"
	}
	return "room_" + strconv.Itoa(id)
}

func costLabel(cost int) string {
	if cost >= analysis.Unreachable {
		return "unreachable"
	}
	return strconv.Itoa(cost)
}

func exitTarget(e dungeon.Exit) string {
	switch e.ConnectedRoomID {
	case dungeon.ExitUnresolved:
		return "unresolved"
	case dungeon.ExitToCorridor:
		return "corridor"
	default:
		return roomID(e.ConnectedRoomID)
	}
}

// heatBands counts wall positions per heat score band.
func heatBands(data *dungeon.DungeonData) map[string]int {
	bands := map[string]int{
		"shared":         0,
		"neutral":        0,
		"spine_adjacent": 0,
		"corner":         0,
	}
	for _, score := range data.Heat {
		switch score {
		case walls.HeatShared:
			bands["shared"]++
		case walls.HeatSpineAdjacent:
			bands["spine_adjacent"]++
		case walls.HeatCorner:
			bands["corner"]++
		default:
			bands["neutral"]++
		}
	}
	return bands
}

// Marshal encodes the document with stable field and room ordering.
// Go maps encode in randomized order, so the room map goes through an
// explicitly ordered node.
func (d *Document) Marshal() ([]byte, error) {
	ordered := &orderedDocument{
		Seed:       d.Seed,
		GridWidth:  d.GridWidth,
		GridHeight: d.GridHeight,
		Entrance:   d.Entrance,
		StartRoom:  d.StartRoom,
		ExitRoom:   d.ExitRoom,
		HeatBands:  sortedCountNode(d.HeatBands),
		Rooms:      sortedRoomsNode(d.Rooms),
		Objects:    d.Objects,
	}
	return yaml.Marshal(ordered)
}

// WriteFile writes the document to a YAML file with a header comment,
// matching the layout files the rest of the tooling reads.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	fmt.Fprintf(f, "# Dungeon layout, seed %d\n", d.Seed)
	fmt.Fprintf(f, "# Grid: %dx%d, rooms: %d\n\n", d.GridWidth, d.GridHeight, len(d.Rooms))

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	defer encoder.Close()

	ordered := &orderedDocument{
		Seed:       d.Seed,
		GridWidth:  d.GridWidth,
		GridHeight: d.GridHeight,
		Entrance:   d.Entrance,
		StartRoom:  d.StartRoom,
		ExitRoom:   d.ExitRoom,
		HeatBands:  sortedCountNode(d.HeatBands),
		Rooms:      sortedRoomsNode(d.Rooms),
		Objects:    d.Objects,
	}
	if err := encoder.Encode(ordered); err != nil {
		return fmt.Errorf("export: encode: %w", err)
	}
	return nil
}

type orderedDocument struct {
	Seed       int64        `yaml:"seed"`
	GridWidth  int          `yaml:"grid_width"`
	GridHeight int          `yaml:"grid_height"`
	Entrance   string       `yaml:"entrance"`
	StartRoom  string       `yaml:"start_room"`
	ExitRoom   string       `yaml:"exit_room"`
	HeatBands  yaml.Node    `yaml:"heat_bands"`
	Rooms      yaml.Node    `yaml:"rooms"`
	Objects    []ObjectYAML `yaml:"objects"`
}

// sortedRoomsNode returns the rooms as an ordered mapping node,
// sorted by numeric room index.
func sortedRoomsNode(rooms map[string]*RoomYAML) yaml.Node {
	ids := make([]string, 0, len(rooms))
	for id := range rooms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return roomIndex(ids[i]) < roomIndex(ids[j]) })

	node := yaml.Node{Kind: yaml.MappingNode}
	for _, id := range ids {
		room := rooms[id]

		value := yaml.Node{Kind: yaml.MappingNode}
		addScalar(&value, "bounds", room.Bounds)
		addScalar(&value, "type", room.Type)
		addScalar(&value, "class", room.Class)
		addScalar(&value, "cost", room.Cost)
		addScalar(&value, "traversals", strconv.Itoa(room.Traversals))
		if len(room.Exits) > 0 {
			addSequence(&value, "exits", room.Exits)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: id},
			&value,
		)
	}
	return node
}

func roomIndex(id string) int {
	n, err := strconv.Atoi(id[len("room_"):])
	if err != nil {
		return -1
	}
	return n
}

// sortedCountNode encodes a string-count map with alphabetical keys.
func sortedCountNode(counts map[string]int) yaml.Node {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	node := yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		addScalar(&node, k, strconv.Itoa(counts[k]))
	}
	return node
}

func addScalar(node *yaml.Node, key, value string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}

func addSequence(node *yaml.Node, key string, values []string) {
	seq := yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range values {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: v})
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&seq,
	)
}
