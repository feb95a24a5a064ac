package services

import (
	"fmt"
	"strings"
)

// basePrompt is the fixed system instruction shared by every task.
const basePrompt = "You are a professional career coach specializing in helping fresh graduates secure jobs, internships, and scholarships. Provide precise, practical guidance. When rewriting CVs or documents, follow best industry standards, use clear and concise language, and focus on measurable achievements. Always maintain accuracy and avoid inventing information."

func buildTailorPrompt(cvText, jdText string, kind PayloadKind) string {
	var b strings.Builder

	b.WriteString("You will receive a Job Description (JD) and a CV. Rewrite the CV so that it aligns more closely with the JD.\n\n")
	b.WriteString(`Your tasks:
1. Strengthen the summary to match the employer's needs.
2. Emphasize relevant skills and experience from the CV. Do not invent information.
3. Improve bullet points using action verbs and measurable impact where appropriate.
4. Remove irrelevant details that do not support the JD.
5. Maintain clarity, structure, and a professional tone.
`)

	switch kind {
	case PayloadMarkdown:
		b.WriteString(`
Return:
1. A short, bullet-point explanation describing what changes were made and why.
2. The complete rewritten CV in clean Markdown.

IMPORTANT:
- Wrap the Markdown CV strictly between [CV_START] and [CV_END] tags for extraction.
- Put the explanation before the [CV_START] tag, never inside the tags.
`)
	default:
		b.WriteString(`
Return:
1. A short, bullet-point explanation describing what changes were made and why.
2. A complete, compilable LaTeX file using the moderncv class.

IMPORTANT:
- Use the moderncv class:
  \documentclass[11pt,a4paper,sans]{moderncv}
  \moderncvstyle{classic}
  \moderncvcolor{blue}
- Wrap the LaTeX code strictly between [LATEX_START] and [LATEX_END] tags for extraction.
- Put the explanation before the [LATEX_START] tag, never inside the tags.
- Ensure all special characters are properly escaped for LaTeX.
`)
	}

	b.WriteString("\nJOB DESCRIPTION:\n")
	b.WriteString(jdText)
	b.WriteString("\n\nCV TO TAILOR:\n")
	b.WriteString(cvText)

	return b.String()
}

func buildAnalyzeJDPrompt(jdText, cvText string) string {
	var b strings.Builder

	b.WriteString("You will compare a Job Description (JD) with a candidate's CV.\n\n")
	b.WriteString(`Perform the following tasks:
1. Extract the required skills, tools, responsibilities, and qualifications from the JD.
2. Perform a gap analysis: identify which important items from the JD are missing in the CV. Do not assume or invent skills.
3. Rank each missing skill or qualification by importance using High / Medium / Low, based strictly on the JD.

Return the results in a clear, structured Markdown format.
`)

	b.WriteString("\nJOB DESCRIPTION:\n")
	b.WriteString(jdText)
	b.WriteString("\n\nCANDIDATE CV:\n")
	b.WriteString(cvText)

	return b.String()
}

func buildExtractSkillsPrompt(cvText string) string {
	var b strings.Builder

	b.WriteString(`Extract skills from the CV and categorize them into:

- Technical Skills
- Soft Skills
- Domain-Specific / Industry Skills

Rules:
- Only extract skills explicitly mentioned in the CV.
- Do not infer or add skills that are not present.
- Present results in a clean Markdown list.
`)

	b.WriteString("\nCV CONTENT:\n")
	b.WriteString(cvText)

	return b.String()
}

func buildATSScorePrompt(cvText string) string {
	var b strings.Builder

	b.WriteString("Evaluate this CV for ATS (Applicant Tracking System) compatibility.\n\n")
	b.WriteString(`Provide the following:

1. **Estimated ATS Score (0-100)** based on keyword alignment, structure, readability, and formatting.
2. **Formatting Issues**
   Identify problems such as: tables, columns, graphics, excessive styling, unreadable headers, unusual fonts, missing sections, or non-ATS-safe elements.
3. **Keyword Analysis**
   Extract important keywords and indicate how well the CV uses them.
4. **Actionable Recommendations**
   Suggest practical changes to improve ATS compatibility. Do not add fictional experience.

Return the results in a structured Markdown format.
`)

	b.WriteString("\nCV CONTENT:\n")
	b.WriteString(cvText)

	return b.String()
}

func buildSummarizeJDPrompt(jdText string) string {
	return fmt.Sprintf(`Summarize the following Job Posting into a structured and concise format.

Include:

- **Key Responsibilities**
- **Critical Skills and Requirements**
- **Nice-to-Have Skills**
- **Company Expectations**
- **Cultural or Workplace Attributes** (only if explicitly mentioned)

Do not add information that is not present in the JD.

JOB POSTING:
%s`, jdText)
}
