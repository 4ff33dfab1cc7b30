package realm

import "errors"

// ErrConfiguration is returned when a realm cannot be assembled from its properties
var ErrConfiguration = errors.New("invalid realm configuration")
