package service

import (
	"merchant-pos/internal/core/domain"
	"merchant-pos/internal/core/ports"
)

// ClassifySubmission turns a raw gateway submission reply into a terminal
// outcome. Response code "1" means approved regardless of which detail lists
// are populated. Anything else is a decline whose reason comes from the
// informational messages list first and the errors list second; a reply with
// neither is a failure, not a decline, because there is nothing to show the
// customer.
func ClassifySubmission(reply *ports.SubmissionReply) domain.Outcome {
	if reply.ResponseCode == "1" {
		return domain.ApprovedOutcome(reply.TransactionID, reply.AuthCode)
	}
	if len(reply.Messages) > 0 {
		return domain.DeclinedOutcome(reply.Messages[0].Text)
	}
	if len(reply.Errors) > 0 {
		return domain.DeclinedOutcome(reply.Errors[0].Text)
	}
	return domain.FailedOutcome(domain.ErrorKindGateway, "Transaction failed")
}
