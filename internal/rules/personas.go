package rules

import (
	"fmt"

	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
)

const (
	personaIDPrefix   = "grp"
	personaNameSuffix = "Group"
)

// ResolvePersona derives the persona for a segment. It is total and
// deterministic: equal (domain code, age, gender, visit, payment) tuples give
// the same id, and goal, channel and note are ignored.
func ResolvePersona(input models.SegmentInput) models.PersonaProfile {
	domainCode := ResolveDomainCode(input.Domain)
	domain := resolveDomainStyle(input.Domain, domainCode)
	age := lookupAge(input.AgeGroup)
	gender := lookupGender(input.Gender)
	visit := lookupVisit(input.VisitFrequency)
	payment := lookupPayment(input.PaymentTier)

	groupID := PersonaID(domainCode, input)
	avatar := BuildAvatar3DConfig(input)

	return models.PersonaProfile{
		ID:   groupID,
		Name: fmt.Sprintf("%s %s %s %s", domain.DisplayName, age.label, gender.label, personaNameSuffix),
		Traits: []string{
			domain.Trait,
			age.trait,
			gender.trait,
			visit.trait,
			payment.trait,
		},
		PainPoints: []string{
			domain.PainPoint,
			age.painPoint,
			gender.painPoint,
			visit.painPoint,
			payment.painPoint,
		},
		ImagePath: buildPersonaImage(groupID, domain, age, gender, visit),
		Avatar3D:  &avatar,
	}
}

// PersonaID composes the group id from a resolved domain code and the four
// segment enums, in that fixed order.
func PersonaID(domainCode string, input models.SegmentInput) string {
	return fmt.Sprintf("%s_%s_%s_%s_%s_%s",
		personaIDPrefix,
		domainCode,
		input.AgeGroup,
		input.Gender,
		input.VisitFrequency,
		input.PaymentTier,
	)
}
