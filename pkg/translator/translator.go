package translator

import (
	"fmt"
	"os"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // List of supported languages
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
	// Add more language constants as needed, e.g., "de", "es", etc.
)

// defaultMessages keeps the CLI usable when it runs outside the repository
// and the translation folder is not on disk.
var defaultMessages = map[language.Tag][]*i18n.Message{
	language.English: {
		{ID: "validationFailed", Other: "Validation error"},
		{ID: "taskNotFound", Other: "Task not found"},
		{ID: "storageFailure", Other: "Storage failure"},
	},
	language.French: {
		{ID: "validationFailed", Other: "Erreur de validation"},
		{ID: "taskNotFound", Other: "Tâche introuvable"},
		{ID: "storageFailure", Other: "Échec du stockage"},
	},
}

// InitTranslator builds the global bundle from the TOML catalogs in the
// translation folder, falling back to the built-in defaults when the folder
// cannot be read.
func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	lstFiles, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Warn("falling back to built-in translations",
			zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		loadDefaults()
		return
	}

	loaded := 0
	for _, f := range lstFiles {
		if f.IsDir() {
			continue
		}
		filepath := fmt.Sprintf("%s/%s", cfg.TranslationFolder, f.Name())
		if _, err := Translator.LoadMessageFile(filepath); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
			continue
		}
		loaded++
	}
	if loaded == 0 {
		loadDefaults()
	}
}

func loadDefaults() {
	for tag, messages := range defaultMessages {
		if err := Translator.AddMessages(tag, messages...); err != nil {
			zap.L().Warn("failed to register built-in translations",
				zap.String("language", tag.String()), zap.Error(err))
		}
	}
}
