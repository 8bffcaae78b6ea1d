package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-set/v2"
	"github.com/iudanet/statemod/internal/models"
)

// IDPattern определяет допустимый формат идентификатора станции
// Без пробелов и кавычек, длина 1-12 символов
var IDPattern = regexp.MustCompile(`^[^\s"]{1,12}$`)

const (
	// MaxIDLen максимальная длина идентификатора в файлах StateMod
	MaxIDLen = 12
)

// ValidateID проверяет, что идентификатор помещается в колонку a12
// и читается обратно одним токеном
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}

	if len([]rune(id)) > MaxIDLen {
		return fmt.Errorf("id must not exceed %d characters", MaxIDLen)
	}

	if !IDPattern.MatchString(id) {
		return fmt.Errorf("id cannot contain whitespace or quotes")
	}

	return nil
}

// ValidateSwitch проверяет значение переключателя on/off
func ValidateSwitch(sw int) error {
	return validateChoice("switch", sw, models.SwitchChoices(false))
}

// validateChoice проверяет, что целое значение входит в список вариантов
func validateChoice(field string, v int, options []string) error {
	allowed := set.From(options)
	if !allowed.Contains(strconv.Itoa(v)) {
		return fmt.Errorf("%s must be one of %s, got %d", field, strings.Join(options, ", "), v)
	}
	return nil
}
