package folio

// Predefined section type tags.
const (
	SectionTypeStarMemo        = "star-memo"
	SectionTypeProjectShowcase = "project-showcase"
	SectionTypeCertifications  = "certifications"
	SectionTypeWorkTimeline    = "work-timeline"
	SectionTypeTestimonials    = "testimonials"
	SectionTypeCustom          = "custom"
)

// Registry resolves section type tags to template descriptors. It is
// read-only after construction; adding a predefined type is a code
// change, not a runtime operation. Pass a Registry into whatever layer
// needs template resolution rather than relying on package state.
type Registry struct {
	order     []string
	templates map[string]*TemplateDescriptor
}

// NewRegistry builds a registry from the given descriptors. Type order
// follows the argument order; a duplicate type tag overwrites the
// earlier descriptor without changing its position.
func NewRegistry(descriptors ...*TemplateDescriptor) *Registry {
	r := &Registry{
		templates: make(map[string]*TemplateDescriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, exists := r.templates[d.Type]; !exists {
			r.order = append(r.order, d.Type)
		}
		r.templates[d.Type] = d
	}
	return r
}

// Get returns the descriptor for a type tag, or nil when the tag is
// unknown. The lookup never fails; callers decide how to treat nil.
func (r *Registry) Get(sectionType string) *TemplateDescriptor {
	return r.templates[sectionType]
}

// Types returns all registered type tags in their fixed registration order.
func (r *Registry) Types() []string {
	types := make([]string, len(r.order))
	copy(types, r.order)
	return types
}

// DefaultRegistry returns a registry holding the five predefined section
// templates plus the generic user-defined template shape.
func DefaultRegistry() *Registry {
	return NewRegistry(
		starMemoTemplate(),
		projectShowcaseTemplate(),
		certificationsTemplate(),
		workTimelineTemplate(),
		testimonialsTemplate(),
		customTemplate(),
	)
}

func starMemoTemplate() *TemplateDescriptor {
	return &TemplateDescriptor{
		Type:        SectionTypeStarMemo,
		Name:        "STAR Memo",
		Description: "Situation, task, action, result write-ups for interviews and reviews",
		Layout:      LayoutList,
		Version:     1,
		Fields:      []string{"situation", "task", "action", "result"},
		Template: map[string]FieldConfig{
			"situation": {Label: "Situation", Type: FieldTypeTextarea, Required: true, Placeholder: "What was the context?"},
			"task":      {Label: "Task", Type: FieldTypeTextarea, Required: true, Placeholder: "What needed to be done?"},
			"action":    {Label: "Action", Type: FieldTypeTextarea, Required: true, Placeholder: "What did you do?"},
			"result":    {Label: "Result", Type: FieldTypeTextarea, Required: true, Placeholder: "What was the outcome?"},
		},
	}
}

func projectShowcaseTemplate() *TemplateDescriptor {
	return &TemplateDescriptor{
		Type:          SectionTypeProjectShowcase,
		Name:          "Project Showcase",
		Description:   "Highlighted projects with links, stack, and screenshots",
		Layout:        LayoutGrid,
		DefaultPublic: true,
		Version:       1,
		Fields:        []string{"title", "description", "technologies", "repoUrl", "demoUrl", "images"},
		Template: map[string]FieldConfig{
			"title":        {Label: "Title", Type: FieldTypeText, Required: true},
			"description":  {Label: "Description", Type: FieldTypeTextarea, Required: true},
			"technologies": {Label: "Technologies", Type: FieldTypeTags},
			"repoUrl":      {Label: "Repository URL", Type: FieldTypeURL, Validation: "url"},
			"demoUrl":      {Label: "Live Demo URL", Type: FieldTypeURL, Validation: "url"},
			"images":       {Label: "Screenshots", Type: FieldTypeImageGallery},
		},
	}
}

func certificationsTemplate() *TemplateDescriptor {
	return &TemplateDescriptor{
		Type:          SectionTypeCertifications,
		Name:          "Certifications",
		Description:   "Professional certifications and credentials",
		Layout:        LayoutCards,
		DefaultPublic: true,
		Version:       1,
		Fields:        []string{"name", "issuer", "issueDate", "expiryDate", "credentialUrl"},
		Template: map[string]FieldConfig{
			"name":          {Label: "Certification", Type: FieldTypeText, Required: true},
			"issuer":        {Label: "Issuing Organization", Type: FieldTypeText, Required: true},
			"issueDate":     {Label: "Issue Date", Type: FieldTypeDate, Validation: "date"},
			"expiryDate":    {Label: "Expiry Date", Type: FieldTypeDate, Validation: "date"},
			"credentialUrl": {Label: "Credential URL", Type: FieldTypeURL, Validation: "url"},
		},
	}
}

func workTimelineTemplate() *TemplateDescriptor {
	return &TemplateDescriptor{
		Type:        SectionTypeWorkTimeline,
		Name:        "Work Timeline",
		Description: "Roles over time rendered as a vertical timeline",
		Layout:      LayoutTimeline,
		Version:     1,
		Fields:      []string{"role", "company", "startDate", "endDate", "summary"},
		Template: map[string]FieldConfig{
			"role":      {Label: "Role", Type: FieldTypeText, Required: true},
			"company":   {Label: "Company", Type: FieldTypeText, Required: true},
			"startDate": {Label: "Start Date", Type: FieldTypeDate, Required: true, Validation: "date"},
			"endDate":   {Label: "End Date", Type: FieldTypeDate, Validation: "date", Placeholder: "Leave empty if current"},
			"summary":   {Label: "Summary", Type: FieldTypeTextarea},
		},
	}
}

func testimonialsTemplate() *TemplateDescriptor {
	return &TemplateDescriptor{
		Type:        SectionTypeTestimonials,
		Name:        "Testimonials",
		Description: "Quotes from colleagues and clients",
		Layout:      LayoutCards,
		MaxEntries:  12,
		Version:     1,
		Fields:      []string{"quote", "author", "authorRole", "avatar"},
		Template: map[string]FieldConfig{
			"quote":      {Label: "Quote", Type: FieldTypeTextarea, Required: true},
			"author":     {Label: "Author", Type: FieldTypeText, Required: true},
			"authorRole": {Label: "Author Role", Type: FieldTypeText},
			"avatar":     {Label: "Avatar", Type: FieldTypeImageGallery},
		},
	}
}

// customTemplate is the generic user-defined shape: no predeclared
// fields, the owner edits the field list and configs through the
// dashboard and the snapshot lives only in the section's content.
func customTemplate() *TemplateDescriptor {
	return &TemplateDescriptor{
		Type:        SectionTypeCustom,
		Name:        "Custom Section",
		Description: "A free-form section with user-defined fields",
		Layout:      LayoutList,
		Version:     1,
		Fields:      []string{},
		Template:    map[string]FieldConfig{},
	}
}
