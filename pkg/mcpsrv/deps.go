package mcpsrv

import (
	"github.com/usestring/xmltypes/internal/cache"
	"github.com/usestring/xmltypes/internal/config"
	"github.com/usestring/xmltypes/pkg/xmltypes"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same engine and result cache as the
// builtin tools.
type Deps struct {
	Config *config.Config
	Engine *xmltypes.Engine
	Cache  *cache.ResultCache
}
