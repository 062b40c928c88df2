package season

// Templates are author-supplied canned schedules used to seed a new draft or
// bulk-replace one division's week list. They are plain data: two templates
// for the same name in different divisions are not cross-checked here, the
// cross-division validator catches mismatches when the user reaches it.

const (
	TemplateStandard = "standard"
	TemplateCompact  = "compact"
)

var templateCatalog = map[Division]map[string]DivisionSchedule{
	DivisionPremier: {
		TemplateStandard: {
			{WeekRegular}, {WeekRegular}, {WeekRegular}, {WeekTST},
			{WeekRegular}, {WeekRegular}, {WeekRegular}, {WeekRegular},
			{WeekPlayoff}, {WeekFun}, {WeekPlayoff},
		},
		TemplateCompact: {
			{WeekRegular}, {WeekRegular}, {WeekTST}, {WeekRegular},
			{WeekRegular}, {WeekFun}, {WeekPlayoff},
		},
	},
	DivisionClassic: {
		TemplateStandard: {
			{WeekRegular}, {WeekRegular}, {WeekRegular}, {WeekTST},
			{WeekRegular}, {WeekRegular}, {WeekRegular}, {WeekRegular},
			{WeekRegular}, {WeekFun}, {WeekPlayoff},
		},
		TemplateCompact: {
			{WeekRegular}, {WeekRegular}, {WeekTST}, {WeekRegular},
			{WeekRegular}, {WeekFun}, {WeekPlayoff},
		},
	},
	DivisionEcsFc: {
		TemplateStandard: {
			{WeekRegular}, {WeekRegular}, {WeekRegular}, {WeekRegular},
			{WeekRegular}, {WeekRegular}, {WeekRegular}, {WeekPlayoff},
		},
		TemplateCompact: {
			{WeekRegular}, {WeekRegular}, {WeekRegular}, {WeekRegular},
			{WeekPlayoff},
		},
	},
}

// Template returns a deep copy of the named template for the division, so
// callers can mutate the result without corrupting the catalog.
func Template(d Division, name string) (DivisionSchedule, error) {
	byName, ok := templateCatalog[d]
	if !ok {
		return nil, ErrUnknownDivision
	}
	tmpl, ok := byName[name]
	if !ok {
		return nil, ErrUnknownTemplate
	}
	return tmpl.Clone(), nil
}

// TemplateNames lists the template names available for a division.
func TemplateNames(d Division) []string {
	byName, ok := templateCatalog[d]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	return names
}
