// Package model provides data models for the RabbitMQ collector.
package model

// Vocabulary is a named, ordered list of the document keys the collector
// knows how to turn into samples. Traversal code iterates a vocabulary and
// emits each key that is present; keys outside the vocabulary are ignored.
type Vocabulary struct {
	Name   string
	Fields []string
}

// Contains reports whether field belongs to the vocabulary.
func (v Vocabulary) Contains(field string) bool {
	for _, f := range v.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Len returns the number of fields.
func (v Vocabulary) Len() int {
	return len(v.Fields)
}

var (
	// NodeStats are the per-node fields. All of them are required.
	NodeStats = Vocabulary{
		Name: "node_stats",
		Fields: []string{
			"disk_free",
			"disk_free_limit",
			"fd_total",
			"fd_used",
			"mem_limit",
			"mem_used",
			"proc_total",
			"proc_used",
			"processors",
			"run_queue",
			"sockets_total",
			"sockets_used",
		},
	}

	// MessageStats are the counters of a queue's or exchange's message_stats block.
	MessageStats = Vocabulary{
		Name: "message_stats",
		Fields: []string{
			"ack",
			"publish",
			"publish_in",
			"publish_out",
			"confirm",
			"deliver",
			"deliver_noack",
			"get",
			"get_noack",
			"deliver_get",
			"redeliver",
			"return",
		},
	}

	// DetailStats are the keys of a <field>_details block.
	DetailStats = Vocabulary{
		Name:   "detail_stats",
		Fields: []string{"avg", "avg_rate", "rate", "sample"},
	}

	// QueueStats are the scalar queue fields.
	QueueStats = Vocabulary{
		Name:   "queue_stats",
		Fields: []string{"memory", "messages", "consumers"},
	}

	// QueueMessageStats are the queue message counts that may carry a _details block.
	QueueMessageStats = Vocabulary{
		Name:   "queue_message_stats",
		Fields: []string{"messages", "messages_ready", "messages_unacknowledged"},
	}
)

// DetailsKey returns the key of the details block paired with field.
func DetailsKey(field string) string {
	return field + "_details"
}
