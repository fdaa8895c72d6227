package consumer

import (
	"context"
	"errors"

	"github.com/IBM/sarama"
)

// ConsumeBulkRequests starts consuming ticket chunk messages. The configured
// concurrency is the number of group members this process joins with, so
// partitions are spread across that many independent sessions while each
// partition claim stays strictly ordered.
func (c *Consumer) ConsumeBulkRequests(ctx context.Context) error {
	handler := &bulkRequestsHandler{
		consumer: c,
	}

	for i := 0; i < c.concurrency; i++ {
		group, err := c.createConsumerGroup(c.kafkaConfig.ConsumerGroup)
		if err != nil {
			_ = c.Close()
			return err
		}
		c.bulkRequestsGroups = append(c.bulkRequestsGroups, group)
	}

	for _, group := range c.bulkRequestsGroups {
		group := group
		c.members.Go(func() error {
			for {
				if err := group.ConsumeWithContext(ctx, []string{c.kafkaConfig.Topic}, handler); err != nil {
					if ctx.Err() != nil || errors.Is(err, sarama.ErrClosedConsumerGroup) {
						return nil
					}
					c.l.Errorf(ctx, "Consumer session error: %v", err)
				}
			}
		})

		go func() {
			for err := range group.Errors() {
				c.l.Errorf(ctx, "Consumer group error: %v", err)
			}
		}()
	}

	c.l.Infof(ctx, "Consuming %s as group %s with %d members",
		c.kafkaConfig.Topic, c.kafkaConfig.ConsumerGroup, c.concurrency)

	return nil
}
