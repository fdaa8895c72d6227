package producer

import (
	"ticket-srv/internal/bulk"
	pkgKafka "ticket-srv/pkg/kafka"
	"ticket-srv/pkg/log"
)

// Producer interface for the bulk domain
type Producer interface {
	bulk.Producer
}

// implProducer implements the Producer interface
type implProducer struct {
	l               log.Logger
	producer        pkgKafka.IProducer
	deadLetterTopic string
}

// New creates a new bulk producer
func New(l log.Logger, producer pkgKafka.IProducer, deadLetterTopic string) Producer {
	return &implProducer{
		l:               l,
		producer:        producer,
		deadLetterTopic: deadLetterTopic,
	}
}
