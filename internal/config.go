package internal

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultImage is the published IQR playground image. The CPU and GPU
	// variants share the repository and differ only by tag.
	DefaultImage = "kitware/smqtk/iqr_playground"

	// DefaultVersion selects the CPU variant of the playground image.
	DefaultVersion = "latest-cpu"

	// DefaultContainerName is the session name enforced to be unique by the
	// ensurer's existence check.
	DefaultContainerName = "smqtk-iqr-playground-cpu"

	// DefaultGUIPort publishes the IqrSearchDispatcher web app.
	DefaultGUIPort = 5000

	// DefaultRESTPort publishes the IqrService REST endpoint.
	DefaultRESTPort = 5001

	// DefaultSourceRoot is the host directory expected to hold the SMQTK
	// component trees mounted into the container for development.
	DefaultSourceRoot = "/opt/smqtk"

	// DefaultTickInterval is the cadence of the status watcher.
	DefaultTickInterval = time.Second

	// DefaultTailLines is the per-file tail depth shown on each tick.
	DefaultTailLines = 10

	// Container-side ports are fixed by the playground image's entrypoint;
	// only the host-side published ports are configurable.
	ContainerGUIPort  = 5000
	ContainerRESTPort = 5001

	// imageDirTarget is where the positional image directory is mounted
	// inside the container.
	imageDirTarget = "/images"

	// launchFlag precedes any passthrough arguments handed to the
	// container's entrypoint. It tells the playground to build its
	// descriptor models from the mounted image directory.
	launchFlag = "-b"

	// configPathEnv names an alternative to the --config flag.
	configPathEnv = "PLAYGROUNDCTL_CONFIG"
)

// componentTrees are the SMQTK source trees mounted from the host's source
// root into the container, supporting live-edit development of the
// playground's Python stack.
var componentTrees = []string{
	"smqtk-core",
	"smqtk-dataprovider",
	"smqtk-iqr",
}

// defaultLogPaths is the fixed, ordered list of log files tailed on every
// watcher tick. There is no discovery mechanism; the paths are pinned by
// the playground image's entrypoint.
var defaultLogPaths = []string{
	"/home/smqtk/logs/compute_many_descriptors.log",
	"/home/smqtk/logs/train_itq.log",
	"/home/smqtk/logs/compute_hash_codes.log",
	"/home/smqtk/logs/runApp.IqrService.log",
	"/home/smqtk/logs/runApp.IqrSearchDispatcher.log",
}

// defaultMarkerDir is the directory whose entry count serves as the
// ingest-progress proxy reported by the watcher.
const defaultMarkerDir = "/home/smqtk/data/image_tiles"

type Config struct {
	Image         string
	Version       string
	ContainerName SessionName
	GUIPort       int
	RESTPort      int
	SourceRoot    string

	ImageDir string
	Args     Command

	MarkerDir    string
	LogPaths     []string
	TickInterval time.Duration
	TailLines    int
}

// Ref returns the image reference the session is launched from.
func (c Config) Ref() ImageRef {
	return ImageRef(fmt.Sprintf("%s:%s", c.Image, c.Version))
}

// Binds returns the volume bindings for a new session: the image directory
// plus the three SMQTK component trees under the source root.
func (c Config) Binds() []string {
	binds := []string{fmt.Sprintf("%s:%s", c.ImageDir, imageDirTarget)}
	for _, tree := range c.Trees() {
		binds = append(binds, fmt.Sprintf("%s:%s", path.Join(c.SourceRoot, tree), path.Join("/home/smqtk", tree)))
	}
	return binds
}

// Trees returns the names of the mounted component trees.
func (c Config) Trees() []string {
	return append([]string(nil), componentTrees...)
}

// LaunchArgs returns the entrypoint arguments for a new session: the fixed
// leading flag followed by the caller's passthrough arguments.
func (c Config) LaunchArgs() Command {
	return append(Command{launchFlag}, c.Args...)
}

// fileConfig is the overridable subset of Config accepted from a TOML file.
// Zero values mean "keep the current setting".
type fileConfig struct {
	Image         string `toml:"image"`
	Version       string `toml:"version"`
	ContainerName string `toml:"container_name"`
	GUIPort       int    `toml:"gui_port"`
	RESTPort      int    `toml:"rest_port"`
	SourceRoot    string `toml:"source_root"`
	TailLines     int    `toml:"tail_lines"`
}

// ParseConfig builds the configuration for supervising the playground
// session. Values layer as defaults, then the TOML config file (--config or
// PLAYGROUNDCTL_CONFIG), then explicit flags. The first positional argument
// is the image directory; everything after it is passed through verbatim to
// the container's entrypoint.
func ParseConfig(args []string, environment []string) (Config, error) {
	lookup := make(map[string]string)
	for _, variable := range environment {
		key, value, ok := strings.Cut(variable, "=")
		if ok {
			lookup[key] = value
		}
	}

	config := Config{
		Image:         DefaultImage,
		Version:       DefaultVersion,
		ContainerName: DefaultContainerName,
		GUIPort:       DefaultGUIPort,
		RESTPort:      DefaultRESTPort,
		SourceRoot:    DefaultSourceRoot,
		MarkerDir:     defaultMarkerDir,
		LogPaths:      append([]string(nil), defaultLogPaths...),
		TickInterval:  DefaultTickInterval,
		TailLines:     DefaultTailLines,
	}

	var (
		configPath    string
		image         string
		version       string
		containerName string
		guiPort       int
		restPort      int
		sourceRoot    string
	)

	fs := flag.NewFlagSet("playgroundctl", flag.ContinueOnError)
	fs.StringVar(&configPath, "config", lookup[configPathEnv], "TOML config file path")
	fs.StringVar(&image, "image", config.Image, "playground image repository")
	fs.StringVar(&version, "version", config.Version, "playground image tag")
	fs.StringVar(&containerName, "name", string(config.ContainerName), "session container name")
	fs.IntVar(&guiPort, "gui-port", config.GUIPort, "published host port for the IQR GUI")
	fs.IntVar(&restPort, "rest-port", config.RESTPort, "published host port for the IQR REST service")
	fs.StringVar(&sourceRoot, "source-root", config.SourceRoot, "host directory holding the SMQTK component trees")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if configPath != "" {
		overrides, err := loadFileConfig(configPath)
		if err != nil {
			return Config{}, err
		}
		applyFileConfig(&config, overrides)
	}

	// Explicit flags win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "image":
			config.Image = image
		case "version":
			config.Version = version
		case "name":
			config.ContainerName = SessionName(containerName)
		case "gui-port":
			config.GUIPort = guiPort
		case "rest-port":
			config.RESTPort = restPort
		case "source-root":
			config.SourceRoot = sourceRoot
		}
	})

	rest := fs.Args()
	if len(rest) > 0 {
		config.ImageDir = rest[0]
		config.Args = Command(rest[1:])
	}

	return config, nil
}

func loadFileConfig(configPath string) (fileConfig, error) {
	var overrides fileConfig

	data, err := os.ReadFile(configPath)
	if err != nil {
		return overrides, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &overrides); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			return overrides, &ParseError{Path: configPath, Err: decodeErr}
		}
		return overrides, &ParseError{Path: configPath, Err: err}
	}

	return overrides, nil
}

func applyFileConfig(config *Config, overrides fileConfig) {
	if overrides.Image != "" {
		config.Image = overrides.Image
	}
	if overrides.Version != "" {
		config.Version = overrides.Version
	}
	if overrides.ContainerName != "" {
		config.ContainerName = SessionName(overrides.ContainerName)
	}
	if overrides.GUIPort != 0 {
		config.GUIPort = overrides.GUIPort
	}
	if overrides.RESTPort != 0 {
		config.RESTPort = overrides.RESTPort
	}
	if overrides.SourceRoot != "" {
		config.SourceRoot = overrides.SourceRoot
	}
	if overrides.TailLines != 0 {
		config.TailLines = overrides.TailLines
	}
}
