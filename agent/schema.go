package agent

// ticketSchema is the database schema block shared by every specialist's
// instructions, phrased with the dataset field names.
var ticketSchema = `## Database Schema
The database contains IT support tickets with these fields:
- Id: unique identifier
- Create_Date: ticket creation date
- Subject: ticket subject
- Body: ticket question/description
- Answer: ticket response/solution
- Type: ticket type (values: "Incident", "Request", "Problem", "Change")
- Queue: department name (values: "Human Resources", "IT", "Finance", "Operations", "Sales", "Marketing", "Engineering", "Support")
- Priority: priority level (values: "high", "medium", "low")
- Language: ticket language
- Business_Type: business category
- Tags: categorization tags
`

// filterSchema is the schema block used inside parse prompts. The filter
// expression is passed through to the search backend unchanged, so the
// column names and the boolean expression syntax are the backend's.
var filterSchema = `Schema for filter expressions (boolean expressions over these columns):
- ticket_id: unique identifier (string)
- create_date: ticket creation date (string)
- subject: ticket subject (string)
- body: ticket question/description (string)
- answer: ticket response/solution (string)
- type: string (values: "Incident", "Request", "Problem", "Change")
- queue: string (department name, values: "Human Resources", "IT", "Finance", "Operations", "Sales", "Marketing", "Engineering", "Support")
- priority: string (values: "high", "medium", "low")
- language: ticket language (string)
- business_type: business category (string)
- tags: comma separated categorization tags (string)

Filter syntax: ==, !=, in, and, or, not, like. String values in double quotes.
Examples:
- queue == "Human Resources"
- priority == "high" and type == "Incident"
- not (queue in ["IT", "Finance"])
`
