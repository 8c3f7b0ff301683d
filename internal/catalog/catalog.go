// Package catalog serves the reference option lists the scheduling screen
// offers in its dropdowns, read through the reference cache.
package catalog

import (
	"context"

	"github.com/hocvien-dev/timetable-console/internal/models"
	"github.com/hocvien-dev/timetable-console/internal/refcache"
)

type source interface {
	TimeSlots(ctx context.Context) ([]models.TimeSlot, error)
	Classes(ctx context.Context) ([]models.Class, error)
	Teachers(ctx context.Context) ([]models.Teacher, error)
	Rooms(ctx context.Context) ([]models.Room, error)
	Semesters(ctx context.Context) ([]models.Semester, error)
}

// Catalog caches the stable option lists; per-lesson availability queries
// bypass it on purpose.
type Catalog struct {
	src   source
	cache *refcache.Store
}

// New builds a catalog over the given source and cache.
func New(src source, cache *refcache.Store) *Catalog {
	return &Catalog{src: src, cache: cache}
}

// TimeSlots returns the period ordering of a day.
func (c *Catalog) TimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	var out []models.TimeSlot
	err := c.cache.GetOrLoad(ctx, "time_slots", &out, func(ctx context.Context) (interface{}, error) {
		return c.src.TimeSlots(ctx)
	})
	return out, err
}

// Classes returns the class filter options.
func (c *Catalog) Classes(ctx context.Context) ([]models.Class, error) {
	var out []models.Class
	err := c.cache.GetOrLoad(ctx, "classes", &out, func(ctx context.Context) (interface{}, error) {
		return c.src.Classes(ctx)
	})
	return out, err
}

// Teachers returns the teacher filter options.
func (c *Catalog) Teachers(ctx context.Context) ([]models.Teacher, error) {
	var out []models.Teacher
	err := c.cache.GetOrLoad(ctx, "teachers", &out, func(ctx context.Context) (interface{}, error) {
		return c.src.Teachers(ctx)
	})
	return out, err
}

// Rooms returns the room options.
func (c *Catalog) Rooms(ctx context.Context) ([]models.Room, error) {
	var out []models.Room
	err := c.cache.GetOrLoad(ctx, "rooms", &out, func(ctx context.Context) (interface{}, error) {
		return c.src.Rooms(ctx)
	})
	return out, err
}

// Semesters returns the semester options.
func (c *Catalog) Semesters(ctx context.Context) ([]models.Semester, error) {
	var out []models.Semester
	err := c.cache.GetOrLoad(ctx, "semesters", &out, func(ctx context.Context) (interface{}, error) {
		return c.src.Semesters(ctx)
	})
	return out, err
}

// InvalidateSemesters drops the cached semester list after a semester edit.
func (c *Catalog) InvalidateSemesters(ctx context.Context) {
	c.cache.Invalidate(ctx, "semesters")
}
