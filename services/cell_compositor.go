package services

// labelGap separates a label from its value on the same baseline.
const labelGap = 1.5

var (
	identityLabelFont = Font{Style: FontBold, Size: 9}
	identityValueFont = Font{Size: 9}
)

// DrawLabelValue writes "label value" starting at x on baseline y. The label is
// bold when boldLabel is set and the value follows at the measured label width.
// It draws onto geometry reserved earlier and does not check for overflow.
func DrawLabelValue(c Canvas, x, y float64, label, value string, boldLabel bool) {
	lf := identityValueFont
	if boldLabel {
		lf = identityLabelFont
	}
	c.Text(x, y, label, lf)
	if label == "" {
		c.Text(x, y, value, identityValueFont)
		return
	}
	c.Text(x+c.StringWidth(label, lf)+labelGap, y, value, identityValueFont)
}

// DrawLabelValueRight right-aligns value at rightX and places the bold label
// immediately to its left.
func DrawLabelValueRight(c Canvas, rightX, y float64, label, value string) {
	vw := c.StringWidth(value, identityValueFont)
	c.Text(rightX-vw, y, value, identityValueFont)

	lw := c.StringWidth(label, identityLabelFont)
	c.Text(rightX-vw-labelGap-lw, y, label, identityLabelFont)
}
