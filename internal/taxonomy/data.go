package taxonomy

// Category names used by the default taxonomy.
const (
	CategoryLanguages  = "Languages"
	CategoryFrontend   = "Frontend"
	CategoryBackend    = "Backend"
	CategoryDatabases  = "Databases"
	CategoryCloud      = "Cloud & DevOps"
	CategoryDataML     = "Data / ML / MLOps"
	CategoryNLP        = "NLP / LLM"
	CategoryMonitoring = "Monitoring / Analytics"
	CategoryTesting    = "Testing / Practices"
	CategoryOther      = "Other"
)

// DefaultCategoryWeights returns the default per-category importance weights.
// Specialized categories (cloud, ML) are up-weighted; monitoring and testing
// are down-weighted because their presence is less discriminative.
func DefaultCategoryWeights() map[string]float64 {
	return map[string]float64{
		CategoryLanguages:  1.0,
		CategoryFrontend:   0.8,
		CategoryBackend:    1.0,
		CategoryDatabases:  0.9,
		CategoryCloud:      1.1,
		CategoryDataML:     1.1,
		CategoryNLP:        1.0,
		CategoryMonitoring: 0.6,
		CategoryTesting:    0.7,
	}
}

// DefaultEntries returns the built-in skill taxonomy: canonical names with
// their alias surface forms, category membership, and per-skill priors.
// A prior of 0 means the default 1.0; ubiquitous skills carry lower priors so
// they do not dominate the coverage score.
func DefaultEntries() []Entry {
	return []Entry{
		// Languages
		{Canonical: "Python", Aliases: []string{"py"}, Category: CategoryLanguages},
		{Canonical: "Java", Category: CategoryLanguages},
		{Canonical: "JavaScript", Aliases: []string{"js", "vanilla js"}, Category: CategoryLanguages},
		{Canonical: "TypeScript", Aliases: []string{"ts"}, Category: CategoryLanguages},
		{Canonical: "SQL", Aliases: []string{"postgres sql", "t-sql", "pl/sql", "structured query language"}, Category: CategoryLanguages},
		{Canonical: "Bash", Aliases: []string{"shell", "sh"}, Category: CategoryLanguages},
		{Canonical: "C", Category: CategoryLanguages},
		{Canonical: "C++", Aliases: []string{"cpp"}, Category: CategoryLanguages},

		// Frontend
		{Canonical: "React.js", Aliases: []string{"react", "reactjs"}, Category: CategoryFrontend},
		{Canonical: "React Native", Aliases: []string{"react-native"}, Category: CategoryFrontend},
		{Canonical: "Next.js", Aliases: []string{"nextjs"}, Category: CategoryFrontend},
		{Canonical: "Redux", Category: CategoryFrontend},
		{Canonical: "AngularJS", Aliases: []string{"angular", "angular.js"}, Category: CategoryFrontend},
		{Canonical: "HTML5", Aliases: []string{"html"}, Category: CategoryFrontend, Prior: 0.8},
		{Canonical: "CSS3", Aliases: []string{"css"}, Category: CategoryFrontend, Prior: 0.8},
		{Canonical: "Bootstrap", Category: CategoryFrontend},
		{Canonical: "Figma", Category: CategoryFrontend},
		{Canonical: "D3.js", Aliases: []string{"d3"}, Category: CategoryFrontend},

		// Backend
		{Canonical: "Node.js", Aliases: []string{"node", "nodejs"}, Category: CategoryBackend},
		{Canonical: "Express.js", Aliases: []string{"express", "expressjs"}, Category: CategoryBackend},
		{Canonical: "Spring Boot", Aliases: []string{"springboot", "spring-boot", "spring"}, Category: CategoryBackend},
		{Canonical: "FastAPI", Category: CategoryBackend},
		{Canonical: "Flask", Category: CategoryBackend},
		{Canonical: "REST APIs", Aliases: []string{"rest", "restful api", "rest api"}, Category: CategoryBackend},
		{Canonical: "Microservices Architecture", Aliases: []string{"microservices", "service oriented", "soa"}, Category: CategoryBackend},

		// Databases
		{Canonical: "PostgreSQL", Aliases: []string{"postgres", "psql"}, Category: CategoryDatabases},
		{Canonical: "MySQL", Category: CategoryDatabases},
		{Canonical: "MongoDB", Aliases: []string{"mongo"}, Category: CategoryDatabases},
		{Canonical: "SQLite", Category: CategoryDatabases},
		{Canonical: "Redis", Category: CategoryDatabases},
		{Canonical: "Oracle", Aliases: []string{"oracle db", "oracle database"}, Category: CategoryDatabases},
		{Canonical: "Redshift", Category: CategoryDatabases},
		{Canonical: "BigQuery", Aliases: []string{"google bigquery", "gcp bigquery"}, Category: CategoryDatabases},
		{Canonical: "Cassandra", Category: CategoryDatabases},
		{Canonical: "DynamoDB", Category: CategoryDatabases},
		{Canonical: "Vector Databases", Aliases: []string{"vector db", "vectorstore"}, Category: CategoryDatabases},
		{Canonical: "FAISS", Category: CategoryDatabases},
		{Canonical: "Pinecone", Category: CategoryDatabases},
		{Canonical: "Weaviate", Category: CategoryDatabases},

		// Cloud & DevOps
		{Canonical: "AWS", Aliases: []string{"amazon web services"}, Category: CategoryCloud},
		{Canonical: "Azure", Category: CategoryCloud},
		{Canonical: "Google Cloud Platform", Aliases: []string{"gcp", "google cloud"}, Category: CategoryCloud},
		{Canonical: "AWS EC2", Aliases: []string{"ec2"}, Category: CategoryCloud},
		{Canonical: "AWS S3", Aliases: []string{"s3"}, Category: CategoryCloud},
		{Canonical: "AWS RDS", Aliases: []string{"rds"}, Category: CategoryCloud},
		{Canonical: "AWS Lambda", Aliases: []string{"lambda"}, Category: CategoryCloud},
		{Canonical: "IAM", Aliases: []string{"aws iam"}, Category: CategoryCloud},
		{Canonical: "CloudWatch", Aliases: []string{"amazon cloudwatch"}, Category: CategoryCloud},
		{Canonical: "Docker", Category: CategoryCloud},
		{Canonical: "Kubernetes", Aliases: []string{"k8s"}, Category: CategoryCloud},
		{Canonical: "EKS", Category: CategoryCloud},
		{Canonical: "ECS", Category: CategoryCloud},
		{Canonical: "Terraform", Aliases: []string{"iac terraform"}, Category: CategoryCloud},
		{Canonical: "Jenkins", Category: CategoryCloud},
		{Canonical: "Git", Category: CategoryCloud, Prior: 0.5},
		{Canonical: "GitHub Actions", Aliases: []string{"gha", "github actions ci"}, Category: CategoryCloud},
		{Canonical: "Ansible", Category: CategoryCloud},
		{Canonical: "CI/CD", Aliases: []string{"cicd", "ci cd"}, Category: CategoryCloud},
		{Canonical: "VPC", Category: CategoryCloud},

		// Data / ML / MLOps
		{Canonical: "Scikit-learn", Aliases: []string{"sklearn"}, Category: CategoryDataML},
		{Canonical: "PyTorch", Aliases: []string{"pytorch lightning", "torch"}, Category: CategoryDataML},
		{Canonical: "TensorFlow", Aliases: []string{"tf"}, Category: CategoryDataML},
		{Canonical: "MLflow", Category: CategoryDataML},
		{Canonical: "TorchServe", Category: CategoryDataML},
		{Canonical: "TensorFlow Serving", Category: CategoryDataML},
		{Canonical: "Feature Stores", Aliases: []string{"feature store", "feast"}, Category: CategoryDataML},
		{Canonical: "Data Modeling", Aliases: []string{"data model"}, Category: CategoryDataML},
		{Canonical: "ETL", Aliases: []string{"elt", "extract transform load"}, Category: CategoryDataML},
		{Canonical: "Data Warehousing", Aliases: []string{"data warehouse", "dw"}, Category: CategoryDataML},
		{Canonical: "Airflow", Aliases: []string{"apache airflow"}, Category: CategoryDataML},
		{Canonical: "Spark", Aliases: []string{"apache spark", "pyspark"}, Category: CategoryDataML},
		{Canonical: "Kafka", Aliases: []string{"apache kafka"}, Category: CategoryDataML},
		{Canonical: "Data Quality", Aliases: []string{"dq"}, Category: CategoryDataML},
		{Canonical: "Data Governance", Category: CategoryDataML},
		{Canonical: "Streaming", Aliases: []string{"stream processing", "real time streaming", "realtime"}, Category: CategoryDataML},
		{Canonical: "Kinesis", Category: CategoryDataML},
		{Canonical: "PubSub", Aliases: []string{"pub/sub", "google pubsub"}, Category: CategoryDataML},
		{Canonical: "RabbitMQ", Category: CategoryDataML},

		// NLP / LLM
		{Canonical: "Natural Language Processing", Aliases: []string{"nlp"}, Category: CategoryNLP},
		{Canonical: "Large Language Models", Aliases: []string{"llm", "foundation models"}, Category: CategoryNLP},
		{Canonical: "Hugging Face Transformers", Aliases: []string{"transformers", "huggingface"}, Category: CategoryNLP},
		{Canonical: "OpenAI APIs", Aliases: []string{"openai", "gpt api"}, Category: CategoryNLP},
		{Canonical: "LangChain", Category: CategoryNLP},
		{Canonical: "RAG Pipelines", Aliases: []string{"rag"}, Category: CategoryNLP},
		{Canonical: "Prompt Engineering", Aliases: []string{"prompting"}, Category: CategoryNLP},
		{Canonical: "BERT", Category: CategoryNLP},
		{Canonical: "RoBERTa", Category: CategoryNLP},
		{Canonical: "GPT", Aliases: []string{"gpt-4", "gpt4", "gpt-3.5"}, Category: CategoryNLP},

		// Monitoring / Analytics
		{Canonical: "Prometheus", Category: CategoryMonitoring},
		{Canonical: "Grafana", Category: CategoryMonitoring},
		{Canonical: "ELK Stack", Aliases: []string{"elk", "elasticsearch logstash kibana"}, Category: CategoryMonitoring},
		{Canonical: "Elasticsearch", Category: CategoryMonitoring},
		{Canonical: "Logstash", Category: CategoryMonitoring},
		{Canonical: "Kibana", Category: CategoryMonitoring},
		{Canonical: "Tableau", Category: CategoryMonitoring},
		{Canonical: "Power BI", Aliases: []string{"powerbi"}, Category: CategoryMonitoring},

		// Testing / Practices
		{Canonical: "Unit Testing", Aliases: []string{"unit tests"}, Category: CategoryTesting, Prior: 0.7},
		{Canonical: "Integration Testing", Aliases: []string{"integration tests"}, Category: CategoryTesting},
		{Canonical: "Debugging", Category: CategoryTesting, Prior: 0.6},
		{Canonical: "TDD", Aliases: []string{"test driven development"}, Category: CategoryTesting},
		{Canonical: "Agile/Scrum", Aliases: []string{"agile", "scrum"}, Category: CategoryTesting, Prior: 0.6},
		{Canonical: "Jest", Category: CategoryTesting},
		{Canonical: "Cypress", Category: CategoryTesting},
		{Canonical: "JUnit", Category: CategoryTesting},
		{Canonical: "Mockito", Category: CategoryTesting},
		{Canonical: "A/B Testing", Aliases: []string{"ab testing", "a b testing"}, Category: CategoryTesting},
		{Canonical: "Experiment Tracking", Aliases: []string{"exp tracking"}, Category: CategoryTesting},
	}
}
