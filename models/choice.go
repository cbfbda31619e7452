package models

// Choice is one entry of a closed code list.
type Choice struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

func lookup(choices []Choice, code string) (string, bool) {
	for _, ch := range choices {
		if ch.Code == code {
			return ch.Label, true
		}
	}
	return "", false
}
