package prompt

import "fmt"

// Classification builds the structured-JSON classification prompt. The model
// is asked to stay inside the standard departments but may name another one,
// flagged via standard_category.
func Classification(filename, title, content string) string {
	return fmt.Sprintf(`You are a document classification specialist. Carefully analyze the following document content and classify it into the most appropriate department category.

Document filename: %s
Document title: %s
Document content excerpt:
%s

First, consider these common departments:
1. TECHNICAL - IT-related documents, technical guidelines, system documentation, code documentation, IT procedures
2. FINANCIAL - Financial reports, budgets, invoices, financial analyses, expense reports, income statements, balance sheets, cash flow statements, accounting documents
3. HR - CVs/Resumes, HR policies, job descriptions, performance reviews, employee handbooks
4. LOGISTICS - Supply chain, shipping, inventory, transportation, warehouse documentation
5. LEGAL - Contracts, compliance documents, legal opinions, regulations, policies
6. MARKETING - Marketing plans, branding, advertising, market research
7. OPERATIONS - Standard operating procedures, process documents, operations manuals
8. GENERAL - General documents that don't fit into specific categories

However, if the document clearly belongs to another department not listed above, you should specify that department name instead.

IMPORTANT: If you see financial statements, income statements, balance sheets, profit and loss statements, cash flow statements, or other accounting/financial reports, you MUST classify them as FINANCIAL.

Return your answer in a structured JSON format with the following fields:
- category: The department category (use the predefined ones above if applicable, or specify a custom department)
- standard_category: Is this one of the standard departments listed above? (true/false)
- confidence: a number between 0 and 1 indicating classification confidence
- reasoning: brief explanation for this classification

Format your response as a valid JSON object and nothing else. Example:
{"category": "FINANCIAL", "standard_category": true, "confidence": 0.95, "reasoning": "This document contains income statements, balance sheets, and financial analysis."}`,
		filename, title, content)
}

// CriticalContent builds the urgency-assessment prompt used by the monitor's
// secondary sweep.
func CriticalContent(filename, content string) string {
	return fmt.Sprintf(`Analyze the following document content for critical items that require immediate attention.
Look for deadlines, compliance issues, urgent requests, or high-priority action items.

Document: %s
Content: %s

Return a JSON with these fields:
- is_critical: boolean indicating if this is a critical document
- reason: brief explanation of why it's critical or not
- deadline: any deadline mentioned in YYYY-MM-DD format (or null)
- action_required: what action is needed (or null)
- suggested_recipients: array of roles who should be notified

Respond only with the JSON.`, filename, content)
}
