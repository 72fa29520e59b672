package diagnosis

import (
	"strings"
	"time"
)

// fallbackTemplate is the canned narrative used when the service responds
// without a recommendation. It mirrors the shape of a real engine report so
// the rendering pipeline behaves identically on both paths.
const fallbackTemplate = `# PCOS Diagnostic Report

## Patient Information
- **Name:** {{name}}
- **Assessment Date:** {{date}}

---

## Diagnosis Summary

Based on the provided clinical data and laboratory values, this assessment evaluates the presence and characteristics of **Polycystic Ovary Syndrome (PCOS)**.

### Rotterdam Criteria Assessment

| Criterion | Status | Notes |
|-----------|--------|-------|
| Oligo/Anovulation | Review | Cycle history provided |
| Hyperandrogenism | Review | Hormonal panel provided |
| Polycystic Ovaries | Review | Ultrasound findings provided |

---

## Laboratory Analysis

### Hormonal Profile
- **Total Testosterone:** See submitted value against reference range
- **SHBG:** See submitted value against reference range
- **Free Androgen Index:** Requires calculation from the panel

### Metabolic Assessment
- **Fasting Insulin and Glucose:** HOMA-IR to be derived
- **TSH:** Thyroid screening value submitted
- **Prolactin:** Hyperprolactinemia screening value submitted

---

## Personalized Management Plan

### Lifestyle Modifications
1. **Dietary Changes**
   - Low glycemic index diet recommended
   - Reduce processed carbohydrates
   - Increase fiber intake
2. **Physical Activity**
   - 150 minutes of moderate exercise weekly
   - Combination of cardio and resistance training
3. **Weight Management**
   - Even 5-10% weight loss can improve symptoms

### Follow-up Recommendations
- Repeat hormonal panel in 3 months
- Regular menstrual cycle tracking
- Ultrasound reassessment in 6 months

---

*This report is generated for informational purposes and should be reviewed by a qualified healthcare provider.*
`

// FallbackNarrative synthesizes the canned report body for a patient. The
// result is valid markdown with the patient name and assessment date
// substituted in.
func FallbackNarrative(patientName string, at time.Time) string {
	if patientName == "" {
		patientName = "Patient"
	}
	narrative := strings.ReplaceAll(fallbackTemplate, "{{name}}", patientName)
	return strings.ReplaceAll(narrative, "{{date}}", at.Format("2006-01-02"))
}
