package config

import (
	"github.com/maximthomas/taskboard/pkg/log"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Server  Server  `yaml:"server"`
	Logging Logging `yaml:"logging"`
	TempDir string  `yaml:"tempDir"`
	Tasks   []Task  `yaml:"tasks"`
}

// Task is a menu entry, Properties are decoded by the task type constructor
type Task struct {
	ID          string                 `yaml:"id"`
	Type        string                 `yaml:"type"`
	Title       string                 `yaml:"title"`
	Description string                 `yaml:"description"`
	Properties  map[string]interface{} `yaml:"properties,omitempty"`
}

type Server struct {
	Port int
	Cors Cors
}

type Cors struct {
	AllowedOrigins []string
}

type Logging struct {
	Level  string
	Format string
}

var config Config

func InitConfig() error {
	var configLogger = log.WithField("module", "config")

	var newConfig Config
	err := viper.Unmarshal(&newConfig)
	if err != nil {
		configLogger.Errorf("error reading config: %v", err)
		return errors.Wrap(err, "error reading config")
	}
	err = newConfig.validate()
	if err != nil {
		return err
	}
	err = log.Configure(newConfig.Logging.Level, newConfig.Logging.Format)
	if err != nil {
		return errors.Wrap(err, "error configuring logger")
	}
	SetConfig(newConfig)
	configLogger.Debugf("got configuration with %v tasks", len(config.Tasks))
	return nil
}

func (c Config) validate() error {
	ids := make(map[string]bool)
	for i, t := range c.Tasks {
		if t.ID == "" || t.Type == "" {
			return errors.Errorf("task %v: id and type are required", i)
		}
		if ids[t.ID] {
			return errors.Errorf("task %v defined more than once", t.ID)
		}
		ids[t.ID] = true
	}
	return nil
}

func GetConfig() Config {
	return config
}

// SetConfig replaces the current configuration, empty settings fall back to defaults
func SetConfig(newConfig Config) {
	if newConfig.Server.Port == 0 {
		newConfig.Server.Port = 8080
	}
	if len(newConfig.Tasks) == 0 {
		newConfig.Tasks = DefaultTasks()
	}
	config = newConfig
}

// DefaultTasks returns the built-in menu
func DefaultTasks() []Task {
	return []Task{
		{ID: "twilio-call", Type: "twilio-call", Title: "Twilio Voice Call",
			Description: "Initiate a phone call that speaks a message to the recipient."},
		{ID: "gmail", Type: "gmail", Title: "Gmail Sender",
			Description: "Send an email, with an optional attachment, using your Gmail account."},
		{ID: "instagram", Type: "instagram", Title: "Instagram Poster",
			Description: "Post a photo with a caption directly to your Instagram account."},
		{ID: "twilio-sms", Type: "twilio-sms", Title: "Twilio SMS Sender",
			Description: "Send a simple text message (SMS) to any phone number."},
		{ID: "linkedin", Type: "linkedin", Title: "LinkedIn Poster",
			Description: "Share a text post to your LinkedIn profile."},
		{ID: "honest-ai", Type: "honest-ai", Title: "Honest AI Chatbot",
			Description: "Ask the AI anything. Based on your prompt, it's set up to be an echobot."},
		{ID: "google-search", Type: "google-search", Title: "Google Search",
			Description: "Use the Google Custom Search API to find information on the web."},
		{ID: "pixel-art", Type: "pixel-art", Title: "Pixel Art Generator",
			Description: "Generate a colorful pixelated image based on your specifications."},
		{ID: "whatsapp", Type: "whatsapp", Title: "WhatsApp Instant Sender",
			Description: "Send instant WhatsApp messages through WhatsApp Web."},
	}
}
