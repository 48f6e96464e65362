package speech

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const adcFile = "application_default_credentials.json"

// Check is the outcome of one capability probe.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Availability reports whether voice mode can run.
type Availability struct {
	Recorder    Check
	Transcriber Check
	Synthesizer Check
}

// Ready is true when audio can be captured and transcribed. Speaking
// falls back to printing, so the synthesizer is not required.
func (a Availability) Ready() bool {
	return a.Recorder.OK && a.Transcriber.OK
}

func (a Availability) Checks() []Check {
	return []Check{a.Recorder, a.Transcriber, a.Synthesizer}
}

// Reason explains the first failing required check.
func (a Availability) Reason() string {
	for _, c := range []Check{a.Recorder, a.Transcriber} {
		if !c.OK {
			return fmt.Sprintf("%s: %s", c.Name, c.Detail)
		}
	}
	return ""
}

// Prober inspects the host without starting any device.
type Prober struct {
	LookPath func(file string) (string, error)
	Getenv   func(key string) string
	Stat     func(name string) (os.FileInfo, error)
}

func NewProber() *Prober {
	return &Prober{LookPath: exec.LookPath, Getenv: os.Getenv, Stat: os.Stat}
}

// Probe checks the configured programs and transcriber credentials.
func Probe(cfg Config) Availability {
	return NewProber().Probe(cfg)
}

func (p *Prober) Probe(cfg Config) Availability {
	return Availability{
		Recorder:    p.command("recorder", cfg.RecordCommand, DefaultRecordCommand),
		Transcriber: p.transcriber(cfg),
		Synthesizer: p.command("synthesizer", cfg.SynthCommand, DefaultSynthCommand),
	}
}

func (p *Prober) command(name, command, fallback string) Check {
	if strings.TrimSpace(command) == "" {
		command = fallback
	}
	bin := strings.Fields(command)[0]
	path, err := p.LookPath(bin)
	if err != nil {
		return Check{Name: name, Detail: fmt.Sprintf("%s not found on PATH", bin)}
	}
	return Check{Name: name, OK: true, Detail: path}
}

func (p *Prober) transcriber(cfg Config) Check {
	switch cfg.Transcriber {
	case TranscriberGoogle, "":
		const name = "transcriber (google)"
		creds := cfg.CredentialsFile
		if creds == "" {
			creds = p.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		}
		if creds == "" {
			if adc := p.adcPath(); adc != "" {
				if _, err := p.Stat(adc); err == nil {
					return Check{Name: name, OK: true, Detail: "application default credentials " + adc}
				}
			}
			return Check{Name: name, Detail: "no credentials file configured and no gcloud application default credentials found"}
		}
		if _, err := p.Stat(creds); err != nil {
			return Check{Name: name, Detail: fmt.Sprintf("credentials file %s unreadable", creds)}
		}
		return Check{Name: name, OK: true, Detail: creds}

	case TranscriberAssemblyAI:
		const name = "transcriber (assemblyai)"
		if strings.TrimSpace(cfg.AssemblyAIKey) == "" {
			return Check{Name: name, Detail: "api key not set"}
		}
		return Check{Name: name, OK: true, Detail: "api key set"}

	default:
		return Check{Name: "transcriber", Detail: fmt.Sprintf("unknown backend %q", cfg.Transcriber)}
	}
}

// adcPath is where "gcloud auth application-default login" writes its
// credentials, or "" when the config directory cannot be located.
func (p *Prober) adcPath() string {
	if dir := p.Getenv("CLOUDSDK_CONFIG"); dir != "" {
		return filepath.Join(dir, adcFile)
	}
	if runtime.GOOS == "windows" {
		if dir := p.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, "gcloud", adcFile)
		}
		return ""
	}
	if home := p.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", "gcloud", adcFile)
	}
	return ""
}
