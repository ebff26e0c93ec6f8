package convert

import (
	"fmt"

	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

// BuildPrompt asks for code only, followed by the source exactly as entered
func BuildPrompt(source string, target models.Language) string {
	return fmt.Sprintf("Convert the following code into %s. Only return the converted code, no explanations.\n\nCode:\n%s", target, source)
}
