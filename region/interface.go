package region

import "github.com/joshuapare/regionkit/region/dirty"

// DirtyTracker is a type alias for the canonical interface defined in region/dirty.
type DirtyTracker = dirty.DirtyTracker
