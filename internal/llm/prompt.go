package llm

import (
	"fmt"
	"strings"

	"github.com/mattgrange/winescout/constants"
)

// BuildWineListPrompt composes the extraction prompt for one menu page. The
// page text and a literal output example are embedded so the reply shape is
// fully determined by the prompt.
func BuildWineListPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Extract wine information from the text below into a structured format.\n")
	b.WriteString("For each wine entry, extract:\n")
	b.WriteString("- ID number\n")
	b.WriteString("- Producer\n")
	b.WriteString("- Wine name\n")
	b.WriteString("- Type (e.g., NON-VINTAGE, BLANC DE BLANCS)\n")
	fmt.Fprintf(&b, "- Main Type (one of: %s)\n", strings.Join(constants.MainTypesAsStrings(), ", "))
	b.WriteString("- Region\n")
	b.WriteString("- Country\n")
	b.WriteString("- Vintage (if available)\n")
	b.WriteString("- Price\n")
	fmt.Fprintf(&b, "- Size (%s)\n\n", strings.Join(constants.ServingSizes, ", "))
	b.WriteString("Format as JSON with missing fields as null but get as many wines as possible even if some fields are missing.\n\n")
	b.WriteString("Text to parse:\n")
	b.WriteString(text)
	b.WriteString("\n\nRespond with only valid JSON in this exact format:\n")
	b.WriteString(`{
    "wines": [
        {
            "id": "1234",
            "producer": "Producer Name",
            "name": "Wine Name",
            "type": "Wine Type",
            "main_type": "RED",
            "region": "Region",
            "country": "Country",
            "vintage": "2020",
            "price": "123",
            "size": "bottle"
        }
    ]
}`)
	return b.String()
}
