package search

import "github.com/hoppxi/runa/pkg/catalog"

// Result is the JSON shape of one candidate, the same fields bar widgets
// already consume.
type Result struct {
	Name    string `json:"name"`
	GUI     bool   `json:"gui"`
	Type    string `json:"type"`
	Source  string `json:"source"`
	Command string `json:"command"`
	Icon    string `json:"icon,omitempty"`
	Comment string `json:"comment,omitempty"`
}

func (c Candidate) Result() Result {
	r := Result{
		Name:    c.Name,
		Source:  c.Kind.String(),
		Icon:    c.Icon,
		Comment: c.Description,
	}
	if c.Action == nil {
		return r
	}
	r.Type = c.Action.Kind()

	switch a := c.Action.(type) {
	case catalog.Launch:
		r.GUI = true
		r.Command = a.Path
	case catalog.ShellCommand:
		r.Command = a.Command
	case catalog.Builtin:
		r.Command = a.Op.String()
	case catalog.OpenWebsite:
		r.Command = WebsiteURL(a.URL)
	case catalog.WebSearch:
		r.Command = a.Query
	case catalog.CopyText:
		r.Command = a.Text
	}
	return r
}

func Results(cs []Candidate) []Result {
	out := make([]Result, len(cs))
	for i, c := range cs {
		out[i] = c.Result()
	}
	return out
}

// View is the full presentation payload for one reducer step.
type View struct {
	Query   string   `json:"query"`
	Page    string   `json:"page"`
	Visible bool     `json:"visible"`
	Focus   int      `json:"focus"`
	Size    SizeHint `json:"size"`
	Scroll  Scroll   `json:"scroll"`
	Results []Result `json:"results"`
}

func (s State) View() View {
	return View{
		Query:   s.Raw,
		Page:    s.Page.String(),
		Visible: s.Visible,
		Focus:   s.Focus,
		Size:    s.Size,
		Scroll:  s.Scroll,
		Results: Results(s.Results),
	}
}
