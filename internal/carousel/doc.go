// Package carousel builds carousel message templates from form input and
// converts them to and from the Twilio and Jaiminho JSON formats.
package carousel
