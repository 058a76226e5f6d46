package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // Asia/Tehran must resolve on hosts without a zoneinfo database

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "GANTTSH_"

type Application struct {
	Server   Server `koanf:"server"`
	Timezone string `koanf:"timezone"`
	Chart    Chart  `koanf:"chart"`
}

type Server struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"readtimeout"`
	WriteTimeout time.Duration `koanf:"writetimeout"`
	IdleTimeout  time.Duration `koanf:"idletimeout"`
}

// Chart holds the rendering setup handed to the chart renderer at startup.
// Sizes are in inches and converted to pixels with DPI.
type Chart struct {
	WidthInches     float64 `koanf:"widthinches"`
	RowHeightInches float64 `koanf:"rowheightinches"`
	MinHeightInches float64 `koanf:"minheightinches"`
	DPI             float64 `koanf:"dpi"`
	FontPath        string  `koanf:"fontpath"`
	FontSize        float64 `koanf:"fontsize"`
	TitleFontSize   float64 `koanf:"titlefontsize"`
	WeekAnchor      string  `koanf:"weekanchor"`
}

func defaults() Application {
	return Application{
		Server: Server{
			Addr:         ":8181",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Timezone: "Asia/Tehran",
		Chart: Chart{
			WidthInches:     12,
			RowHeightInches: 0.6,
			MinHeightInches: 4,
			DPI:             100,
			FontPath:        "./config/fonts/Vazirmatn.ttf",
			FontSize:        12,
			TitleFontSize:   14,
			WeekAnchor:      "monday",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	if _, err := app.Chart.Weekday(); err != nil {
		return Application{}, err
	}
	if _, err := app.Location(); err != nil {
		return Application{}, err
	}

	return app, nil
}

// Location resolves Timezone, used to decide what "today" is.
func (a Application) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", a.Timezone, err)
	}
	return loc, nil
}

// Weekday resolves WeekAnchor, the weekday minor ticks are placed on.
func (c Chart) Weekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(c.WeekAnchor, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid week anchor %q", c.WeekAnchor)
}
