package mysql

// TRUNCATE also resets the auto-increment counter, matching the old
// delete-plus-sequence-reset behavior.
const truncateRoomPricesSQL = `TRUNCATE TABLE room_prices`

const insertRoomPricesPrefix = `
INSERT INTO room_prices
  (hotel, room_price, review_score, price_per_review, check_in, check_out, as_of_date, city)
VALUES `

const listRoomPricesSQL = `
SELECT
  hotel,
  room_price,
  review_score,
  price_per_review,
  DATE_FORMAT(check_in,  '%Y-%m-%d'),
  DATE_FORMAT(check_out, '%Y-%m-%d'),
  DATE_FORMAT(as_of_date, '%Y-%m-%d'),
  city
FROM room_prices
ORDER BY price_per_review, id
`

const truncateBookingDetailsSQL = `TRUNCATE TABLE booking_details`

const insertBookingDetailsSQL = `
INSERT INTO booking_details
  (check_in, check_out, city, num_adults, num_children, num_rooms, currency, only_hotel)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const listBookingDetailsSQL = `
SELECT
  DATE_FORMAT(check_in,  '%Y-%m-%d'),
  DATE_FORMAT(check_out, '%Y-%m-%d'),
  city,
  num_adults,
  num_children,
  num_rooms,
  currency,
  only_hotel
FROM booking_details
ORDER BY id
`
