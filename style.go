package notionpub

// StyleSheet holds the inline CSS declarations injected into rendered
// article markup. The publishing platform strips stylesheets, so every
// element carries its own style attribute.
type StyleSheet struct {
	H1              string
	H2              string
	H3              string // also used for deeper headings
	Paragraph       string
	InlineParagraph string // paragraphs inside list items
	BulletList      string
	OrderedList     string
	ListItem        string
	ImageWrapper    string
	Image           string
	Blockquote      string
	Code            string
	Container       string
}

// DefaultStyleSheet returns the stock article styles.
func DefaultStyleSheet() StyleSheet {
	return StyleSheet{
		H1:              "font-size: 22px; font-weight: bold; margin-top: 30px; margin-bottom: 20px; color: #333; line-height: 1.4;",
		H2:              "font-size: 18px; font-weight: bold; margin-top: 30px; margin-bottom: 15px; color: #333; border-left: 4px solid #07C160; padding-left: 10px; line-height: 1.4;",
		H3:              "font-size: 16px; font-weight: bold; margin-top: 20px; margin-bottom: 10px; color: #333;",
		Paragraph:       "font-size: 16px; line-height: 1.8; margin-bottom: 20px; text-align: justify; color: #3f3f3f; letter-spacing: 0.5px;",
		InlineParagraph: "margin: 0; display: inline;",
		BulletList:      "padding-left: 20px; margin-bottom: 20px;",
		OrderedList:     "padding-left: 20px; margin-bottom: 20px;",
		ListItem:        "font-size: 16px; line-height: 1.8; margin-bottom: 8px; color: #3f3f3f; letter-spacing: 0.5px; list-style-position: inside;",
		ImageWrapper:    "text-align: center; margin: 20px 0;",
		Image:           "max-width: 100%; height: auto; display: block; margin: 20px auto; border-radius: 6px; box-shadow: 0 2px 10px rgba(0,0,0,0.05);",
		Blockquote:      "margin: 20px 0; padding: 15px; background: #f7f7f7; border-left: 4px solid #d9d9d9; color: #666; font-size: 15px; line-height: 1.6;",
		Code:            "font-family: Menlo, Monaco, Consolas, monospace; font-size: 14px; background-color: #f0f0f0; padding: 2px 5px; border-radius: 3px; color: #d63384;",
		Container:       `font-family: Optima-Regular, Optima, PingFangSC-light, PingFangTC-light, "PingFang SC", Cambria, Cochin, Georgia, Times, "Times New Roman", serif;`,
	}
}

// Merge returns a copy of s with every non-empty field of override applied.
func (s StyleSheet) Merge(override StyleSheet) StyleSheet {
	pick := func(base, o string) string {
		if o != "" {
			return o
		}
		return base
	}
	return StyleSheet{
		H1:              pick(s.H1, override.H1),
		H2:              pick(s.H2, override.H2),
		H3:              pick(s.H3, override.H3),
		Paragraph:       pick(s.Paragraph, override.Paragraph),
		InlineParagraph: pick(s.InlineParagraph, override.InlineParagraph),
		BulletList:      pick(s.BulletList, override.BulletList),
		OrderedList:     pick(s.OrderedList, override.OrderedList),
		ListItem:        pick(s.ListItem, override.ListItem),
		ImageWrapper:    pick(s.ImageWrapper, override.ImageWrapper),
		Image:           pick(s.Image, override.Image),
		Blockquote:      pick(s.Blockquote, override.Blockquote),
		Code:            pick(s.Code, override.Code),
		Container:       pick(s.Container, override.Container),
	}
}
