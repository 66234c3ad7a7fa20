// Package i18n хранит подписи интерфейса дашборда (pt-BR и en).
package i18n

import (
	"embed"
	"fmt"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator выдает локализованные подписи по идентификатору сообщения
type Translator struct {
	bundle   *i18n.Bundle
	matcher  language.Matcher
	fallback string
}

// NewTranslator загружает встроенные файлы локалей.
// fallback - язык, используемый когда запрошенный не поддерживается.
func NewTranslator(fallback string) (*Translator, error) {
	tag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("parse fallback language %q: %w", fallback, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, entry := range entries {
		name := path.Join("locales", entry.Name())
		data, err := localeFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}
	}

	return &Translator{
		bundle:   bundle,
		matcher:  language.NewMatcher(bundle.LanguageTags()),
		fallback: tag.String(),
	}, nil
}

// Languages возвращает список поддерживаемых языков
func (t *Translator) Languages() []string {
	tags := t.bundle.LanguageTags()
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		result = append(result, tag.String())
	}
	return result
}

// T переводит сообщение. Неизвестный id возвращается как есть.
func (t *Translator) T(lang, messageID string) string {
	localizer := i18n.NewLocalizer(t.bundle, lang, t.fallback)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// Match возвращает поддерживаемый язык, ближайший к запрошенному.
// Пустая строка или неизвестный язык дают язык по умолчанию.
func (t *Translator) Match(lang string) string {
	if lang == "" {
		return t.fallback
	}
	tags := t.bundle.LanguageTags()
	_, index, confidence := t.matcher.Match(language.Make(lang))
	if confidence == language.No || index < 0 || index >= len(tags) {
		return t.fallback
	}
	return tags[index].String()
}
