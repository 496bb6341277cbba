package models

// LearningPath represents a curated sequence of modules on one topic
type LearningPath struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	ImageURL       *string `json:"imageUrl"`
	Level          string  `json:"level"`    // free-form, e.g. "Para Iniciantes"
	Category       string  `json:"category"` // free-form, e.g. "Mathematics"
	TotalModules   int     `json:"totalModules"`
	EstimatedHours int     `json:"estimatedHours"`
	PrimaryColor   *string `json:"primaryColor"`
	Icon           string  `json:"icon"`
}

// LearningPathInput is the create/update payload for a learning path.
// Nil fields are absent from the request.
type LearningPathInput struct {
	Title          *string `json:"title" validate:"required"`
	Description    *string `json:"description" validate:"required"`
	ImageURL       *string `json:"imageUrl"`
	Level          *string `json:"level" validate:"required"`
	Category       *string `json:"category" validate:"required"`
	TotalModules   *int    `json:"totalModules" validate:"required"`
	EstimatedHours *int    `json:"estimatedHours" validate:"required"`
	PrimaryColor   *string `json:"primaryColor"`
	Icon           *string `json:"icon" validate:"required"`
}

// Apply merges the set fields of in onto p
func (in LearningPathInput) Apply(p *LearningPath) {
	setIf(&p.Title, in.Title)
	setIf(&p.Description, in.Description)
	setOptional(&p.ImageURL, in.ImageURL)
	setIf(&p.Level, in.Level)
	setIf(&p.Category, in.Category)
	setIf(&p.TotalModules, in.TotalModules)
	setIf(&p.EstimatedHours, in.EstimatedHours)
	setOptional(&p.PrimaryColor, in.PrimaryColor)
	setIf(&p.Icon, in.Icon)
}

// Module represents one lesson inside a learning path
type Module struct {
	ID               int    `json:"id"`
	LearningPathID   int    `json:"learningPathId"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Content          string `json:"content"` // rich text / HTML
	Order            int    `json:"order"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
}

// ModuleInput is the create/update payload for a module
type ModuleInput struct {
	LearningPathID   *int    `json:"learningPathId" validate:"required"`
	Title            *string `json:"title" validate:"required"`
	Description      *string `json:"description" validate:"required"`
	Content          *string `json:"content" validate:"required"`
	Order            *int    `json:"order" validate:"required"`
	EstimatedMinutes *int    `json:"estimatedMinutes" validate:"required"`
}

// Apply merges the set fields of in onto m
func (in ModuleInput) Apply(m *Module) {
	setIf(&m.LearningPathID, in.LearningPathID)
	setIf(&m.Title, in.Title)
	setIf(&m.Description, in.Description)
	setIf(&m.Content, in.Content)
	setIf(&m.Order, in.Order)
	setIf(&m.EstimatedMinutes, in.EstimatedMinutes)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// setOptional copies a nullable field. A nil source leaves the destination untouched.
func setOptional[T any](dst **T, v *T) {
	if v != nil {
		c := *v
		*dst = &c
	}
}
