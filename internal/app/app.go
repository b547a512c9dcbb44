// Package app owns the application state and advances it one frame at a
// time. It has no scheduling of its own: the caller decides when to Tick.
package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"

	"flowribbon/internal/config"
	"flowribbon/internal/extrude"
	"flowribbon/internal/geo"
	"flowribbon/internal/render"
	"flowribbon/internal/shader"
	"flowribbon/internal/shape"
)

const (
	cameraNear = 0.1
	cameraFar  = 1000

	gridSize      = 2
	gridDivisions = 40
	axesSize      = 5

	// meshLift raises the ribbon off the grid plane.
	meshLift = 0.2
)

var (
	gridColor   = colorful.Color{R: 0x80 / 255.0, G: 0x80 / 255.0, B: 0x80 / 255.0}
	cameraStart = mgl32.Vec3{0, 1, 1}
)

// Display reports the logical pixel size of the drawing area.
type Display interface {
	ClientSize() (w, h int)
}

// DisplaySize is a fixed-size Display.
type DisplaySize struct{ W, H int }

func (d DisplaySize) ClientSize() (int, int) { return d.W, d.H }

// RenderCommand is what one Tick produced.
type RenderCommand struct {
	Frame   []string
	Time    float32
	Resized bool
	Stats   render.Stats
}

// AdvanceTime wraps t to 0 once it has reached 1, then adds step. The
// result may exceed 1 for a single frame.
func AdvanceTime(t, step float32) float32 {
	if t >= 1 {
		t = 0
	}
	return t + step
}

// BuildSolid runs the geometry pipeline: project, build the path, extrude.
func BuildSolid(coords []geo.Coordinate, scale, depth float64) (*extrude.Solid, error) {
	proj := geo.NewProjector(scale)
	path, err := shape.BuildSeq(proj.Project(slices.Values(coords)))
	if err != nil {
		return nil, err
	}
	return extrude.Extrude(path, extrude.Options{Depth: depth})
}

// State is everything a frame needs.
type State struct {
	Scene    *render.Scene
	Camera   *render.Camera
	Renderer *render.Renderer
	Controls *render.OrbitControls
	Material *shader.Material
	// Mesh is nil when the dataset produced no usable outline.
	Mesh  *render.Mesh
	Faces map[string]extrude.DrawRange

	TimeStep float32

	scale, depth float64
	time         float32
	log          zerolog.Logger
}

// New builds the scene once. Empty or degenerate data leaves the scene
// without a mesh; a missing wall group is an error.
func New(cfg config.Config, coords []geo.Coordinate, log zerolog.Logger) (*State, error) {
	mat, err := shader.NewFlowMaterial(cfg.Shader.Color, float32(cfg.Shader.Num))
	if err != nil {
		return nil, fmt.Errorf("failed to compile material: %w", err)
	}

	cam := render.NewPerspectiveCamera(float32(cfg.Camera.Fov), 1, cameraNear, cameraFar)
	cam.Position = cameraStart

	controls := render.NewOrbitControls(cam)
	controls.EnableDamping = true
	controls.EnablePan = true

	scene := render.NewScene(colorful.Color{})
	scene.AddLines(render.GridHelper(gridSize, gridDivisions, gridColor, gridColor)...)
	scene.AddLines(render.AxesHelper(axesSize)...)

	s := &State{
		Scene:    scene,
		Camera:   cam,
		Renderer: render.NewRenderer(0, 0),
		Controls: controls,
		Material: mat,
		TimeStep: float32(cfg.Frame.TimeStep),
		scale:    cfg.Projection.Scale,
		depth:    cfg.Extrude.Depth,
		log:      log,
	}

	err = s.SetDataset(coords)
	if errors.Is(err, shape.ErrEmptyPath) || errors.Is(err, extrude.ErrDegenerate) {
		log.Warn().Err(err).Int("points", len(coords)).Msg("no usable outline, skipping mesh")
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// SetDataset replaces the ribbon with one built from coords. The old mesh
// is removed first, so on error the scene has no ribbon.
func (s *State) SetDataset(coords []geo.Coordinate) error {
	if s.Mesh != nil {
		s.Scene.Remove(s.Mesh)
		s.Mesh, s.Faces = nil, nil
	}

	solid, err := BuildSolid(coords, s.scale, s.depth)
	if err != nil {
		return fmt.Errorf("failed to build solid: %w", err)
	}
	wall, err := solid.Wall()
	if err != nil {
		return err
	}
	if !solid.Simple {
		s.log.Warn().Msg("outline self-intersects, caps may be incomplete")
	}

	s.Faces = solid.FaceRanges()
	s.Mesh = render.NewMesh(solid, wall, s.Material)
	s.Mesh.Model = mgl32.Translate3D(0, meshLift, 0).Mul4(mgl32.HomogRotate3DX(math32.Pi / 2))
	s.Scene.Add(s.Mesh)

	s.log.Info().
		Int("points", len(coords)).
		Int("vertices", solid.VertexCount()).
		Int("wallStart", wall.Start).
		Int("wallCount", wall.Count).
		Msg("solid built")
	return nil
}

// Time is the current flow phase.
func (s *State) Time() float32 { return s.time }

// Tick advances one frame and renders it into d's pixel size.
func (s *State) Tick(d Display) RenderCommand {
	var cmd RenderCommand

	w, h := d.ClientSize()
	w, h = max(w, 0), max(h, 0)
	if cw, ch := s.Renderer.Size(); cw != w || ch != h {
		s.Renderer.SetSize(w, h)
		if h > 0 {
			s.Camera.Aspect = float32(w) / float32(h)
		}
		s.Camera.UpdateProjection()
		cmd.Resized = true
		s.log.Debug().Int("width", w).Int("height", h).Msg("resize")
	}

	s.time = AdvanceTime(s.time, s.TimeStep)
	s.Material.Uniforms.Time = s.time

	s.Controls.Update()

	cmd.Stats = s.Renderer.Render(s.Scene, s.Camera)
	cmd.Frame = s.Renderer.Surface().Lines()
	cmd.Time = s.time
	return cmd
}
