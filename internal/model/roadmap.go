package model

import (
    "math"
    "time"

    gonanoid "github.com/matoous/go-nanoid/v2"
)

// Difficulty levels shared by roadmaps and their steps.
const (
    DifficultyBeginner     = "beginner"
    DifficultyIntermediate = "intermediate"
    DifficultyAdvanced     = "advanced"
)

// Generation sources recorded in a roadmap's metadata.
const (
    SourceAI       = "ai"
    SourceUser     = "user"
    SourceTemplate = "template"
)

// Share permissions for roadmaps shared with other users.
const (
    PermissionView = "view"
    PermissionEdit = "edit"
)

// ValidDifficulty reports whether s is one of the accepted difficulty values.
func ValidDifficulty(s string) bool {
    return s == DifficultyBeginner || s == DifficultyIntermediate || s == DifficultyAdvanced
}

// Resource is a learning material attached to a step.
type Resource struct {
    Title string `json:"title"`
    URL   string `json:"url"`
    Type  string `json:"type"` // article, video, course, book, other
}

// Step is one unit of a roadmap's curriculum.  Steps are embedded in the
// roadmap row as a JSON array and addressed by their stable ID.
type Step struct {
    ID            string     `json:"id"`
    Title         string     `json:"title"`
    Description   string     `json:"description"`
    Resources     []Resource `json:"resources"`
    EstimatedTime string     `json:"estimatedTime"`
    Difficulty    string     `json:"difficulty"`
    Prerequisites []string   `json:"prerequisites"`
    Skills        []string   `json:"skills"`
    Completed     bool       `json:"isCompleted"`
    CompletedAt   *time.Time `json:"completedAt"`
    Order         int        `json:"order"`
}

// Duration is a roadmap's estimated duration as entered by the user or a
// template (e.g. {3, "months"}).
type Duration struct {
    Value int    `json:"value"`
    Unit  string `json:"unit"` // days, weeks, months
}

// ShareEntry grants another user access to a private roadmap.
type ShareEntry struct {
    UserID     uint64 `json:"userId"`
    Permission string `json:"permission"` // view | edit
}

// ForkInfo records where a forked roadmap came from.
type ForkInfo struct {
    OriginalID uint64    `json:"originalId"`
    ForkedBy   uint64    `json:"forkedBy"`
    ForkedAt   time.Time `json:"forkedAt"`
}

// Progress is the derived completion summary of a roadmap.  It is always
// recomputed from step state on save and never accepted from clients.
type Progress struct {
    CompletedSteps int `json:"completedSteps"`
    TotalSteps     int `json:"totalSteps"`
    Percentage     int `json:"percentage"`
}

// Generation captures how a roadmap came to exist.
type Generation struct {
    Source string `json:"source"` // ai | user | template
    Model  string `json:"model"`  // model name when Source == "ai"
    Prompt string `json:"prompt"` // prompt text when Source == "ai"
}

// Roadmap is a user-owned learning plan.  Scalar fields map to columns on
// the `roadmaps` table; the slice and struct fields are JSON columns so a
// save is a single row replace.  Two concurrent saves of the same roadmap
// race at the row level with last-writer-wins; there is no optimistic
// concurrency token.
type Roadmap struct {
    ID          uint64       `json:"id"`
    OwnerID     uint64       `json:"ownerId"`
    Title       string       `json:"title"`
    Description string       `json:"description"`
    Topic       string       `json:"topic"`
    Difficulty  string       `json:"difficulty"`
    Duration    Duration     `json:"estimatedDuration"`
    Steps       []Step       `json:"steps"`
    Tags        []string     `json:"tags"`
    IsPublic    bool         `json:"isPublic"`
    SharedWith  []ShareEntry `json:"sharedWith"`
    LikedBy     []uint64     `json:"likedBy"`
    Fork        *ForkInfo    `json:"forkedFrom,omitempty"`
    Progress    Progress     `json:"progress"`
    Generation  Generation   `json:"generation"`
    Version     int          `json:"version"`
    CreatedAt   time.Time    `json:"createdAt"`
    UpdatedAt   time.Time    `json:"updatedAt"`
}

// NewStepID returns a fresh stable identifier for a step.
func NewStepID() string {
    id, err := gonanoid.New(12)
    if err != nil {
        // gonanoid only fails when the OS random source does; fall back to
        // a timestamp-derived id rather than aborting a save.
        return time.Now().UTC().Format("20060102150405.000000000")
    }
    return "step_" + id
}

// NormalizeSteps fills defaults on every step and stamps sequential order
// indices.  Steps without an ID receive a fresh one; empty difficulties
// inherit the roadmap difficulty.
func (r *Roadmap) NormalizeSteps() {
    for i := range r.Steps {
        s := &r.Steps[i]
        if s.ID == "" {
            s.ID = NewStepID()
        }
        if s.Difficulty == "" {
            s.Difficulty = r.Difficulty
        }
        if s.Resources == nil {
            s.Resources = []Resource{}
        }
        if s.Prerequisites == nil {
            s.Prerequisites = []string{}
        }
        if s.Skills == nil {
            s.Skills = []string{}
        }
        s.Order = i
    }
}

// RecomputeProgress derives the progress block from step completion state.
// Percentage is rounded to the nearest integer.
func (r *Roadmap) RecomputeProgress() {
    total := len(r.Steps)
    completed := 0
    for i := range r.Steps {
        if r.Steps[i].Completed {
            completed++
        }
    }
    pct := 0
    if total > 0 {
        pct = int(math.Round(100 * float64(completed) / float64(total)))
    }
    r.Progress = Progress{CompletedSteps: completed, TotalSteps: total, Percentage: pct}
}

// FindStep returns a pointer to the step with the given stable id, or nil.
func (r *Roadmap) FindStep(stepID string) *Step {
    for i := range r.Steps {
        if r.Steps[i].ID == stepID {
            return &r.Steps[i]
        }
    }
    return nil
}

// ToggleLike flips userID's membership in the liking set and reports the
// resulting state.
func (r *Roadmap) ToggleLike(userID uint64) bool {
    for i, id := range r.LikedBy {
        if id == userID {
            r.LikedBy = append(r.LikedBy[:i], r.LikedBy[i+1:]...)
            return false
        }
    }
    r.LikedBy = append(r.LikedBy, userID)
    return true
}

// SharedPermission returns the permission granted to userID, or "" when the
// roadmap is not shared with them.
func (r *Roadmap) SharedPermission(userID uint64) string {
    for _, e := range r.SharedWith {
        if e.UserID == userID {
            return e.Permission
        }
    }
    return ""
}

// CanView reports whether the given user (0 for anonymous) may read the
// roadmap.  Owners, admins, shared users and everyone on public roadmaps
// pass.
func (r *Roadmap) CanView(userID uint64, isAdmin bool) bool {
    if r.IsPublic {
        return true
    }
    if userID == 0 {
        return false
    }
    if isAdmin || r.OwnerID == userID {
        return true
    }
    return r.SharedPermission(userID) != ""
}

// CanEdit reports whether the given user may mutate the roadmap's step
// state.  Full replacement and deletion remain restricted to the owner or
// an admin; an "edit" share grant only covers working through the steps.
func (r *Roadmap) CanEdit(userID uint64, isAdmin bool) bool {
    if userID == 0 {
        return false
    }
    if isAdmin || r.OwnerID == userID {
        return true
    }
    return r.SharedPermission(userID) == PermissionEdit
}
