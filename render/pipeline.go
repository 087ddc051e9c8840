package render

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/syirilrakhulh/oddbit-player/constant"
	"github.com/syirilrakhulh/oddbit-player/log"
)

// ErrContextUnavailable is returned by Init when the surface cannot provide a GPU context
// or the pass-through program does not compile.
var ErrContextUnavailable = errors.New("render context unavailable")

// Pipeline owns the GPU objects of one player and runs its frame loop.
type Pipeline struct {
	surface   Surface
	source    Source
	scheduler Scheduler

	mu       sync.Mutex
	ctx      Context
	program  Program
	position Buffer
	texCoord Buffer
	texture  Texture
	pending  bool
	closed   bool
	draws    int
}

// New returns an uninitialised pipeline drawing source onto surface.
func New(surface Surface, source Source, scheduler Scheduler) *Pipeline {
	return &Pipeline{
		surface:   surface,
		source:    source,
		scheduler: scheduler,
	}
}

// Init acquires the context and creates the program, both vertex buffers and the frame texture.
// It runs once per mount and again after a context loss; objects of a previous Init are released.
func (p *Pipeline) Init() error {
	ctx, err := p.surface.Context()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}
	if ctx == nil {
		return ErrContextUnavailable
	}

	program, err := ctx.CreateProgram(vertexShader, fragmentShader)
	if err != nil {
		return fmt.Errorf("%w: compile program: %v", ErrContextUnavailable, err)
	}

	position, err := ctx.CreateBuffer(quad)
	if err != nil {
		return fmt.Errorf("position buffer: %w", err)
	}
	if err := ctx.VertexAttrib(program, "a_position", position, 2); err != nil {
		return fmt.Errorf("bind a_position: %w", err)
	}

	texCoord, err := ctx.CreateBuffer(texCoords)
	if err != nil {
		return fmt.Errorf("texture coordinate buffer: %w", err)
	}
	if err := ctx.VertexAttrib(program, "a_texCoord", texCoord, 2); err != nil {
		return fmt.Errorf("bind a_texCoord: %w", err)
	}

	texture, err := ctx.CreateTexture()
	if err != nil {
		return fmt.Errorf("frame texture: %w", err)
	}
	ctx.TexParameter(texture, ClampToEdge, Linear)

	p.mu.Lock()
	if !p.closed {
		p.release()
	}
	p.closed = false
	p.ctx = ctx
	p.program = program
	p.position = position
	p.texCoord = texCoord
	p.texture = texture
	p.mu.Unlock()

	return p.Resize()
}

// Resize matches the surface to the natural picture size, or 1280x720 while it is unknown.
func (p *Pipeline) Resize() error {
	width, height := p.source.NaturalSize()
	if width <= 0 || height <= 0 {
		width, height = constant.FallbackWidth, constant.FallbackHeight
	}

	p.surface.SetSize(width, height)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctx != nil && !p.closed {
		p.ctx.Viewport(0, 0, width, height)
	}
	return nil
}

// Start begins the frame loop. It does nothing while a loop is already live,
// before Init, or after Close.
// pending is set exactly while a frame is scheduled, and a frame only reschedules while the
// source is neither paused nor ended, so it doubles as the check that the source is playing.
func (p *Pipeline) Start() {
	p.mu.Lock()
	if p.ctx == nil || p.closed || p.pending {
		p.mu.Unlock()
		return
	}
	p.pending = true
	p.mu.Unlock()

	p.scheduler.RequestFrame(p.frame)
}

// Live reports whether a frame is scheduled.
func (p *Pipeline) Live() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// Draws returns the number of draw calls issued so far.
func (p *Pipeline) Draws() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draws
}

// frame draws the current picture and schedules the next frame while the source is playing.
func (p *Pipeline) frame() {
	p.mu.Lock()
	p.pending = false

	if p.closed || p.source.Paused() || p.source.Ended() {
		p.mu.Unlock()
		return
	}

	if picture := p.source.Frame(); picture != nil {
		if err := p.ctx.TexImage(p.texture, picture); err != nil {
			log.Warnf("upload frame: %v", err)
		} else {
			p.ctx.DrawArrays(TriangleStrip, 0, 4)
			p.draws++
		}
	}

	p.pending = true
	p.mu.Unlock()

	p.scheduler.RequestFrame(p.frame)
}

// Close releases the GPU objects. Frames already scheduled become no-ops.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.release()
}

// release deletes the objects of the current context. The caller holds mu.
func (p *Pipeline) release() {
	if p.ctx == nil {
		return
	}
	p.ctx.DeleteTexture(p.texture)
	p.ctx.DeleteBuffer(p.texCoord)
	p.ctx.DeleteBuffer(p.position)
	p.ctx.DeleteProgram(p.program)
}

// TimerScheduler paces frames at a fixed rate.
type TimerScheduler struct {
	interval time.Duration
}

// NewTimerScheduler returns a scheduler running at fps frames per second.
func NewTimerScheduler(fps int) *TimerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TimerScheduler{interval: time.Second / time.Duration(fps)}
}

// RequestFrame runs f once the current frame interval has elapsed.
func (s *TimerScheduler) RequestFrame(f func()) {
	time.AfterFunc(s.interval, f)
}
