package camera

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/errs"
	"github.com/Faultbox/scenekit/pkg/keyframe"
)

// Path returns the path registered under id, or nil.
func (c *Camera) Path(id int) *keyframe.Interpolator { return c.paths[id] }

// PathIDs returns the registered path ids in increasing order.
func (c *Camera) PathIDs() []int {
	ids := make([]int, 0, len(c.paths))
	for id := range c.paths {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// AddKeyFrameToPath appends the current camera pose to path id, one second
// after its last keyframe. The path is created on first use.
func (c *Camera) AddKeyFrameToPath(id int) {
	p, ok := c.paths[id]
	if !ok {
		p = keyframe.New(c.frame)
		c.paths[id] = p
		logger.Named("camera").Info("path created", zap.Int("path", id))
	}
	p.AddKeyFrameAuto(c.frame.Pose())
	logger.Named("camera").Debug("keyframe added",
		zap.Int("path", id), zap.Int("keyframes", p.NumberOfKeyFrames()))
}

// PlayPath starts path id, or stops it when it is already playing.
func (c *Camera) PlayPath(id int) error {
	p, ok := c.paths[id]
	if !ok {
		return errs.Configuration.New("no camera path %d", id)
	}
	if p.IsRunning() {
		p.Stop()
		return nil
	}
	c.interpolator.Stop()
	return p.Start()
}

// DeletePath stops and removes path id. Unknown ids are ignored.
func (c *Camera) DeletePath(id int) {
	p, ok := c.paths[id]
	if !ok {
		return
	}
	p.Stop()
	delete(c.paths, id)
	logger.Named("camera").Info("path deleted", zap.Int("path", id))
}

// ResetPath stops path id and moves the camera to its first keyframe.
func (c *Camera) ResetPath(id int) error {
	p, ok := c.paths[id]
	if !ok {
		return errs.Configuration.New("no camera path %d", id)
	}
	if p.NumberOfKeyFrames() < 2 {
		return errs.InsufficientKeyframes.New("path %d has %d keyframes", id, p.NumberOfKeyFrames())
	}
	p.Reset()
	return nil
}

// Tick advances the running transition and every playing path by dt seconds.
func (c *Camera) Tick(dt float32) {
	c.interpolator.Tick(dt)
	for _, id := range c.PathIDs() {
		c.paths[id].Tick(dt)
	}
}
