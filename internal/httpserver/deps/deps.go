package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/outlink-dev/outlink/internal/index"
	"github.com/outlink-dev/outlink/internal/launch"
	"github.com/outlink-dev/outlink/internal/logger"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time   // for testing, defaults to time.Now
	AllowedHosts []string           // Host headers allowed to access the server
	AllowedCIDRS []string           // IPs allowed to access healthz/readyz endpoints
	TrustProxy   bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RedisClient  *redis.Client      // Redis client connection
	MemoryIndex  *index.MemoryIndex // In-memory provider catalog + usage counters
	LandingPath  string             // Landing page path the /api/go redirect targets
	DeploymentCN bool               // true when deployed for the CN region
	CacheTTL     time.Duration      // TTL for cached token resolutions
	Timings      launch.Timings     // Launch flow timings handed to clients
	// Channel to trigger manual overlay reload (nil when no overlay configured)
	ReloadTrigger chan struct{}
}
