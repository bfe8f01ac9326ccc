package reader

import (
	"fmt"
	"strings"
	"time"

	"github.com/Feilkin/blob-game/asset"
	"github.com/Feilkin/blob-game/bvh"
	"github.com/Feilkin/blob-game/log"
	"github.com/Feilkin/blob-game/scene"
	"github.com/Feilkin/blob-game/types"
	"gopkg.in/yaml.v3"
)

type yamlObject struct {
	Name string     `yaml:"name"`
	Min  [3]float32 `yaml:"min"`
	Max  [3]float32 `yaml:"max"`

	// Defaults to (1, 1, 1) when omitted.
	Scale       *[3]float32 `yaml:"scale"`
	Translation [3]float32  `yaml:"translation"`

	BufferIndex *int32 `yaml:"buffer_index"`
}

type yamlScene struct {
	// Other scene files whose objects are merged into this scene. Relative
	// paths are resolved against the including file.
	Include []string     `yaml:"include"`
	Objects []yamlObject `yaml:"objects"`
}

type yamlSceneReader struct {
	logger log.Logger
	scene  *scene.Scene

	// Object names seen so far mapped to the file that defined them.
	names map[string]string

	// Files currently being parsed; used to detect include cycles.
	parsing map[string]bool

	// An error stack that provides additional error information when
	// scene files include other files.
	errStack []string
}

// Create a new yaml scene reader.
func newYamlReader() *yamlSceneReader {
	return &yamlSceneReader{
		logger:  log.New("yaml scene reader"),
		scene:   &scene.Scene{},
		names:   make(map[string]string),
		parsing: make(map[string]bool),
	}
}

// Read scene definition.
func (r *yamlSceneReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()

	if err := r.parse(sceneRes); err != nil {
		return nil, err
	}

	r.logger.Noticef("parsed %d objects in %d ms", len(r.scene.Objects), time.Since(start).Nanoseconds()/1e6)
	return r.scene, nil
}

func (r *yamlSceneReader) parse(res *asset.Resource) error {
	if r.parsing[res.Path()] {
		return r.emitError(res.Path(), "include cycle detected")
	}
	r.parsing[res.Path()] = true
	defer delete(r.parsing, res.Path())

	data, err := res.ReadAll()
	if err != nil {
		return r.emitError(res.Path(), "%v", err)
	}

	var doc yamlScene
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return r.emitError(res.Path(), "%v", err)
	}

	for index, incPath := range doc.Include {
		r.pushFrame(fmt.Sprintf("included from %s [include %d]", res.Path(), index))

		incRes, err := asset.NewResource(incPath, res)
		if err != nil {
			return r.emitError(res.Path(), "%v", err)
		}
		if res.IsRemote() && !incRes.IsRemote() {
			incRes.Close()
			return r.emitError(res.Path(), "remote scene cannot include local file %s", incRes.Path())
		}
		if err = r.parse(incRes); err != nil {
			return err
		}

		r.popFrame()
	}

	for index, def := range doc.Objects {
		obj, err := r.parseObject(res.Path(), index, def)
		if err != nil {
			return err
		}
		r.scene.Add(obj)
	}

	return nil
}

func (r *yamlSceneReader) parseObject(file string, index int, def yamlObject) (*scene.Object, error) {
	if def.Name == "" {
		return nil, r.emitError(file, "object %d: missing name", index)
	}
	if definedIn, exists := r.names[def.Name]; exists {
		return nil, r.emitError(file, `object %d: duplicate name "%s" (already defined in %s)`, index, def.Name, definedIn)
	}
	r.names[def.Name] = file

	local, err := bvh.NewAABB(types.Vec3(def.Min), types.Vec3(def.Max))
	if err != nil {
		return nil, r.wrapError(file, err, `object "%s"`, def.Name)
	}

	obj := scene.NewObject(def.Name, local)
	obj.Translation = types.Vec3(def.Translation)
	if def.Scale != nil {
		obj.Scale = types.Vec3(*def.Scale)
	}
	if def.BufferIndex != nil {
		obj.SetBufferIndex(*def.BufferIndex)
	}

	if err := obj.WorldBounds().Validate(); err != nil {
		return nil, r.wrapError(file, err, `object "%s" transform`, def.Name)
	}

	return obj, nil
}

// Generate an error message that also includes any data in the error stack.
func (r *yamlSceneReader) emitError(file string, msgFormat string, args ...interface{}) error {
	return r.wrapError(file, nil, msgFormat, args...)
}

// Same as emitError but keeps err in the chain for errors.Is.
func (r *yamlSceneReader) wrapError(file string, err error, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var stack string
	if len(r.errStack) > 0 {
		stack = "\n" + strings.Join(r.errStack, "\n")
	}

	if err == nil {
		return fmt.Errorf("[%s] error: %s%s", file, msg, stack)
	}
	return fmt.Errorf("[%s] error: %s: %w%s", file, msg, err, stack)
}

// Push a frame to the error stack.
func (r *yamlSceneReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *yamlSceneReader) popFrame() {
	r.errStack = r.errStack[1:]
}
